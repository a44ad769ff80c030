package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 5 * time.Second

type mongoSquare struct {
	Row      int    `bson:"row"`
	Col      int    `bson:"col"`
	Occupied bool   `bson:"occupied"`
	Kind     string `bson:"kind,omitempty"`
	Colour   string `bson:"colour,omitempty"`
	HasMoved bool   `bson:"has_moved"`
}

type mongoBoard struct {
	Slot    string        `bson:"_id"`
	Squares []mongoSquare `bson:"squares"`
}

type mongoTurn struct {
	Slot   string `bson:"_id"`
	ToMove string `bson:"to_move"`
}

// MongoStore keeps boards and turns in two collections keyed by slot.
type MongoStore struct {
	client *mongo.Client
	boards *mongo.Collection
	turns  *mongo.Collection
}

func NewMongoStore(ctx context.Context, address, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(database)
	return &MongoStore{
		client: client,
		boards: db.Collection(collection + "_boards"),
		turns:  db.Collection(collection + "_turns"),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, slot string, snap model.Snapshot) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	board := mongoBoard{Slot: slot, Squares: make([]mongoSquare, 0, len(snap.Squares))}
	for _, rec := range snap.Squares {
		board.Squares = append(board.Squares, mongoSquare(rec))
	}
	upsert := options.Replace().SetUpsert(true)
	if _, err := s.boards.ReplaceOne(ctx, bson.D{{Key: "_id", Value: slot}}, board, upsert); err != nil {
		return fmt.Errorf("save board record: %w", err)
	}
	if _, err := s.turns.ReplaceOne(ctx, bson.D{{Key: "_id", Value: slot}}, mongoTurn{Slot: slot, ToMove: snap.ToMove}, upsert); err != nil {
		return fmt.Errorf("save turn record: %w", err)
	}
	log.Debugf("saved slot %s to mongo", slot)
	return nil
}

func (s *MongoStore) Load(ctx context.Context, slot string) (model.Snapshot, error) {
	if err := validateSlot(slot); err != nil {
		return model.Snapshot{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var board mongoBoard
	if err := s.boards.FindOne(ctx, bson.D{{Key: "_id", Value: slot}}).Decode(&board); err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s board: %w", slot, mongoErr(err))
	}
	var turn mongoTurn
	if err := s.turns.FindOne(ctx, bson.D{{Key: "_id", Value: slot}}).Decode(&turn); err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s turn: %w", slot, mongoErr(err))
	}

	snap := model.Snapshot{Squares: make([]model.SquareRecord, 0, len(board.Squares)), ToMove: turn.ToMove}
	for _, sq := range board.Squares {
		snap.Squares = append(snap.Squares, model.SquareRecord(sq))
	}
	return snap, nil
}

func mongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

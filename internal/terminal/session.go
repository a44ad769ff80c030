// Package terminal plays a game over a line-oriented text stream: a local
// terminal or an SSH session.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/benbeisheim/setachess-backend/internal/notation"
	"github.com/benbeisheim/setachess-backend/internal/render"
	"github.com/benbeisheim/setachess-backend/internal/store"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/term"
)

const helpText = `commands:
  <row> <col>   activate a square, e.g. "6 0"
  <square>      activate a square by name, e.g. "a2"
  reset         drop the current selection
  new           start over from the opening position
  save [slot]   save the game
  load [slot]   load a saved game
  fen           print the position as FEN
  history       print the moves played
  help          show this text
  quit          leave
`

var errQuit = errors.New("quit")

type Session struct {
	Name string

	game        *model.Game
	store       store.Store
	defaultSlot string
	renderer    *render.Renderer
	out         io.Writer
}

func NewSession(name string, st store.Store, defaultSlot string, useColour bool) *Session {
	return &Session{
		Name:        name,
		game:        model.NewGame(),
		store:       st,
		defaultSlot: defaultSlot,
		renderer:    render.New(useColour),
	}
}

type lineReader interface {
	ReadLine() (string, error)
}

// promptScanner prompts and reads lines from a plain stream.
type promptScanner struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p promptScanner) ReadLine() (string, error) {
	fmt.Fprint(p.out, "> ")
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// Run reads commands from in until quit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.loop(ctx, promptScanner{scanner: bufio.NewScanner(in), out: out}, out)
}

// RunTerminal is Run for a raw-mode terminal such as an SSH pty. Line editing
// and echo are handled here.
func (s *Session) RunTerminal(ctx context.Context, rw io.ReadWriter) error {
	t := term.NewTerminal(rw, "> ")
	return s.loop(ctx, t, t)
}

func (s *Session) loop(ctx context.Context, lines lineReader, out io.Writer) error {
	s.out = out
	fmt.Fprintf(out, "game %s, type help for commands\n", s.Name)
	if err := s.show(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		err = s.handle(ctx, strings.Fields(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func (s *Session) handle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(s.out, helpText)
		return nil
	case "reset":
		s.game.Reset()
		return s.show()
	case "new":
		s.game = model.NewGame()
		return s.show()
	case "fen":
		fmt.Fprintln(s.out, notation.FEN(s.game.Board(), s.game.ToMove()))
		return nil
	case "history":
		s.printHistory()
		return nil
	case "save":
		return s.save(ctx, slotArg(args))
	case "load":
		return s.load(ctx, slotArg(args))
	}

	pos, err := parseSquare(args)
	if err != nil {
		return err
	}
	if !pos.InBounds() {
		return fmt.Errorf("square %s is off the board, rows and columns run 0 to 7", pos)
	}
	return s.activate(pos)
}

func (s *Session) activate(pos model.Position) error {
	outcome, err := s.game.Select(pos)
	if err != nil {
		if errors.Is(err, model.ErrContractViolation) {
			log.Errorf("terminal %s: select %s: %v", s.Name, pos, err)
		}
		return err
	}
	if outcome == model.Rejected {
		fmt.Fprintf(s.out, "nothing to move at %s\n", pos)
	}
	return s.show()
}

func (s *Session) save(ctx context.Context, slot string) error {
	if slot == "" {
		slot = s.defaultSlot
	}
	if err := s.store.Save(ctx, slot, s.game.Snapshot()); err != nil {
		log.Warnf("terminal %s: save to %q failed: %v", s.Name, slot, err)
		fmt.Fprintf(s.out, "could not save: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "saved to %s\n", slot)
	return nil
}

// load failures are reported and the game carries on unchanged.
func (s *Session) load(ctx context.Context, slot string) error {
	if slot == "" {
		slot = s.defaultSlot
	}
	snap, err := s.store.Load(ctx, slot)
	if err == nil {
		err = s.game.Restore(snap)
	}
	if err != nil {
		log.Warnf("terminal %s: load from %q failed: %v", s.Name, slot, err)
		fmt.Fprintf(s.out, "could not load: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "loaded %s\n", slot)
	return s.show()
}

func (s *Session) show() error {
	return s.renderer.Render(s.out, s.game.State())
}

func (s *Session) printHistory() {
	history := s.game.History()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "no moves yet")
		return
	}
	for i, m := range history {
		white, black := "..", ""
		if m.WhitePly != nil {
			white = m.WhitePly.Notation
		}
		if m.BlackPly != nil {
			black = m.BlackPly.Notation
		}
		fmt.Fprintf(s.out, "%d. %s %s\n", i+1, white, black)
	}
}

func slotArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

// parseSquare accepts "<row> <col>" or an algebraic square name.
func parseSquare(args []string) (model.Position, error) {
	switch len(args) {
	case 1:
		return model.ParseNotation(strings.ToLower(args[0]))
	case 2:
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return model.Position{}, fmt.Errorf("unknown command %q", strings.Join(args, " "))
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return model.Position{}, fmt.Errorf("invalid column %q", args[1])
		}
		return model.Position{Row: row, Col: col}, nil
	}
	return model.Position{}, fmt.Errorf("unknown command %q", strings.Join(args, " "))
}

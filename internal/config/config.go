package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Configuration struct {
	Server struct {
		Host         string `envconfig:"SERVER_HOST"`
		Port         string `envconfig:"SERVER_PORT" default:"3000"`
		AllowOrigins string `envconfig:"SERVER_ALLOW_ORIGINS" default:"http://localhost:5173"`
	}
	Store struct {
		Backend     string `envconfig:"STORE_BACKEND" default:"file"`
		Dir         string `envconfig:"STORE_DIR" default:"./saves"`
		SQLitePath  string `envconfig:"SQLITE_PATH" default:"./chess.db"`
		DefaultSlot string `envconfig:"DEFAULT_SLOT" default:"default"`
	}
	Mongo struct {
		Address    string `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
		Database   string `envconfig:"MONGO_DATABASE" default:"setachess"`
		Collection string `envconfig:"MONGO_COLLECTION" default:"saves"`
	}
	Terminal struct {
		SSHAddr     string `envconfig:"SSH_ADDR" default:":2222"`
		HostKeyFile string `envconfig:"SSH_HOST_KEY"`
	}
}

// Address is the listen address for the HTTP server.
func (c *Configuration) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func InitConfig() (*Configuration, error) {
	config := &Configuration{}
	err := envconfig.Process("", config)
	return config, err
}

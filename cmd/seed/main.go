// Command seed creates or refreshes the admin account inside the document
// store. The live request surface never mutates accounts, so this is the only
// way one comes to exist.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/himatikom/blogserver/internal/docstore"
	"github.com/himatikom/blogserver/internal/userservice"
)

type seedConfig struct {
	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	StoreFilePath string `mapstructure:"STORE_FILE_PATH"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDB       string `mapstructure:"MONGO_DB"`

	AdminUsername string `mapstructure:"SEED_ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"SEED_ADMIN_PASSWORD"`
}

func main() {
	configPath := flag.String("config", ".env", "path to the configuration file")
	flag.Parse()

	cfg, err := loadSeedConfig(*configPath)
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Fatal("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD must be set")
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("connect to document store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedAdmin(ctx, store, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin account: %v", err)
	}

	log.Printf("seeded admin account %q", cfg.AdminUsername)
}

func loadSeedConfig(path string) (*seedConfig, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("STORE_FILE_PATH", "data/state.json")

	var cfg seedConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newStore(cfg *seedConfig) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case "file":
		return docstore.NewFileStore(cfg.StoreFilePath)
	case "mongo":
		return docstore.NewMongoStore(cfg.MongoURI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// seedAdmin replaces the password of an existing account with the same
// username, or appends a new account with the next free id.
func seedAdmin(ctx context.Context, store docstore.Store, username, password string) error {
	hash, err := userservice.HashPassword(password)
	if err != nil {
		return err
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Users {
		if doc.Users[i].Username == username {
			doc.Users[i].Password = hash
			return store.Save(ctx, doc)
		}
	}

	id := 1
	for i := range doc.Users {
		if doc.Users[i].ID >= id {
			id = doc.Users[i].ID + 1
		}
	}

	doc.Users = append(doc.Users, docstore.User{
		ID:        id,
		Username:  username,
		Password:  hash,
		Role:      "admin",
		CreatedAt: time.Now().UTC(),
	})

	return store.Save(ctx, doc)
}

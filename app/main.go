package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/himatikom/blogserver/internal/blobstore"
	"github.com/himatikom/blogserver/internal/blogservice"
	"github.com/himatikom/blogserver/internal/docstore"
	"github.com/himatikom/blogserver/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	uploads     *blobstore.LocalStore
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the document store
	store, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to connect to the document store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the blob store
	blobs, uploads, err := newBlobStore(cfg)
	if err != nil {
		logger.Error("failed to set up blob storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(store, cfg.TokenSecret, logger),
		blogService: blogservice.NewBlogService(store, blobs, logger),
		uploads:     uploads,
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newStore(cfg *Config) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case "file":
		return docstore.NewFileStore(cfg.StoreFilePath)
	case "mongo":
		return docstore.NewMongoStore(cfg.MongoURI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// newBlobStore returns the configured blob store. The second return value is
// non-nil only for the local backend, whose directory the server exposes as
// static files.
func newBlobStore(cfg *Config) (blobstore.Store, *blobstore.LocalStore, error) {
	switch cfg.BlobBackend {
	case "local":
		local, err := blobstore.NewLocalStore(cfg.UploadDir, cfg.UploadURL)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	case "minio":
		remote, err := blobstore.NewMinioStore(blobstore.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return remote, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

package cmd

import (
	"fmt"

	"s3lib/core/config"
	"s3lib/core/logger"
	"s3lib/core/pathfs"
	"s3lib/core/s3path"
	"s3lib/core/storage"

	"go.uber.org/zap"
)

// configDir is where LoadConfig looks for the .env file.
var configDir = "."

// env is what every command needs to talk to the store.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	fs     *pathfs.FS
}

func setup() (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &env{cfg: cfg, logger: logg, fs: pathfs.New(client, logg)}, nil
}

func parsePaths(uris ...string) ([]s3path.Path, error) {
	paths := make([]s3path.Path, 0, len(uris))
	for _, uri := range uris {
		p, err := s3path.Parse(uri)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/teledrop/teledrop/internal/config"
	"github.com/teledrop/teledrop/internal/db"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// resolveBaseDir picks the data directory: TELEDROP_HOME if set,
// ~/.teledrop otherwise.
func resolveBaseDir() (string, error) {
	if dir := os.Getenv("TELEDROP_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".teledrop"), nil
}

func main() {
	baseDir, err := resolveBaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	app := newCLIApp(database, cfg)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/screenly/internal/config"
	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/log"
	"github.com/mmcdole/screenly/internal/omdb"
	"github.com/mmcdole/screenly/internal/state"
	"github.com/mmcdole/screenly/internal/store"
	"github.com/mmcdole/screenly/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// probeQuery is searched once during setup to check the API key
const probeQuery = "Fury"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("screenly %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := log.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.Null()
		closeLog = func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting screenly", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client := omdb.NewClient(cfg.OMDb.BaseURL, cfg.OMDb.APIKey, logger, omdb.WithTimeout(cfg.OMDb.Timeout))

	watched, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open watched list: %w", err)
	}
	defer watched.Close()

	ctrl := state.NewController(watched, logger)
	defer ctrl.Shutdown()

	model := tui.NewModel(ctrl, client, tui.Options{
		StatusTimeout: cfg.UI.StatusTimeout,
		DetailTimeout: cfg.OMDb.Timeout,
		Logger:        logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an OMDb API key until one works, then saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Screenly!")
	fmt.Println()
	fmt.Println("Screenly searches the OMDb catalog. Get a free API key at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		apiKey, err := readAPIKey("Enter your OMDb API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Print("Checking key...")
		if err := probeAPIKey(cfg, apiKey, logger); err != nil {
			fmt.Printf("\r✗ Could not use this key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		fmt.Println("\r✓ Key accepted   ")

		cfg.OMDb.APIKey = apiKey
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info("saved API key to config", "dir", config.DefaultConfigPath())

	fmt.Printf("Configuration saved to %s\n\n", config.DefaultConfigPath())
	return nil
}

// readAPIKey reads a line without echo when stdin is a terminal
func readAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// probeAPIKey runs one search. A "not found" answer still proves the key works.
func probeAPIKey(cfg *config.Config, apiKey string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := omdb.NewClient(cfg.OMDb.BaseURL, apiKey, logger, omdb.WithTimeout(cfg.OMDb.Timeout))
	_, err := client.SearchMovies(ctx, probeQuery)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

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
	"github.com/mmcdole/showlist/internal/app"
	"github.com/mmcdole/showlist/internal/collection"
	"github.com/mmcdole/showlist/internal/config"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/log"
	"github.com/mmcdole/showlist/internal/persist"
	"github.com/mmcdole/showlist/internal/remote"
	"github.com/mmcdole/showlist/internal/store"
	"github.com/mmcdole/showlist/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion, sample bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&sample, "sample", false, "start with sample shows (replaces the saved list)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: showlist [flags] [login|logout]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("showlist %s\n", Version)
		return
	}

	var err error
	switch flag.Arg(0) {
	case "":
		err = run(sample)
	case "login":
		err = runLogin()
	case "logout":
		err = runLogout()
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The TUI owns the terminal, so never log to stderr here
	logger := log.NullLogger()
	if cfg.Logging.File != "" {
		if l, err := log.SetupLogger(&cfg.Logging); err == nil {
			logger = l
		}
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func run(sample bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	logger.Info("starting showlist", "version", Version)

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	var backup domain.BackupClient
	if cfg.HasRemote() {
		backup = remote.NewClient(cfg.Remote.URL, logger)
	}

	adapter := persist.NewAdapter(st.Namespace(store.LocalNamespace), backup, config.TokenFile{}, logger)
	ctrl := app.NewController(cfg.Remote.Token, domain.ParseOrder(cfg.UI.DefaultOrder), logger)

	var samples []domain.Show
	if sample {
		samples = collection.SampleShows()
	}

	p := tea.NewProgram(
		tui.NewModel(ctrl, adapter, samples, logger),
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runLogin prompts for the backup server and token, checks them against the
// server and saves them
func runLogin() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	prompt := "Backup server URL (e.g., http://192.168.1.10:8420)"
	if cfg.Remote.URL != "" {
		prompt += " [" + cfg.Remote.URL + "]"
	}
	fmt.Print(prompt + ": ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	serverURL := strings.TrimSpace(input)
	if serverURL == "" {
		serverURL = cfg.Remote.URL
	}
	if serverURL == "" {
		return domain.ErrRemoteNotConfigured
	}

	// Prompt for token (hidden input)
	fmt.Print("Token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	fmt.Println()
	token := strings.TrimSpace(string(tokenBytes))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println("Checking token...")
	if err := remote.NewClient(serverURL, logger).Verify(ctx, token); err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthFailed):
			return errors.New("the server rejected this token")
		case errors.Is(err, domain.ErrServerOffline):
			return fmt.Errorf("could not reach %s: %w", serverURL, err)
		}
		return err
	}

	if err := config.SaveRemote(serverURL, token); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Signed in. Your list will be backed up to", serverURL)
	return nil
}

func runLogout() error {
	if _, _, err := setup(); err != nil {
		return err
	}
	if err := config.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	fmt.Println("✓ Signed out. The local list is kept.")
	return nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/app"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		ephemeral   bool
		resetKey    bool
		resetData   bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&ephemeral, "ephemeral", false, "keep favorites and settings in memory only")
	flag.BoolVar(&resetKey, "reset-key", false, "forget the saved TMDB API key")
	flag.BoolVar(&resetData, "reset-data", false, "delete saved favorites, theme and search history")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(ephemeral, resetKey, resetData); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ephemeral, resetKey, resetData bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if resetKey {
		if err := adapter.ClearCredentials(); err != nil {
			return err
		}
		cfg.TMDB.APIKey = ""
		fmt.Println("✓ API key removed")
	}
	if resetData {
		n, err := adapter.ClearData(cfg.Storage.Path)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved data removed (%d entries)\n", n)
	}

	// One reader for every prompt so piped input is not split across buffers
	stdin := bufio.NewReader(os.Stdin)

	// Check if configured
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, stdin, logger); err != nil {
			return err
		}
	}

	client := newClient(cfg, cfg.TMDB.APIKey, logger)

	// Ephemeral only affects this run; cfg may already have been saved above
	storagePath := cfg.Storage.Path
	if ephemeral {
		storagePath = ""
	}

	kv, err := store.Open(storagePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()

	state := app.NewState(client, kv, cfg.UI.DarkMode, logger)

	if !state.Session.Authenticated() {
		if err := promptUsername(stdin, os.Stdout, state.Session); err != nil {
			return err
		}
	}

	// Create launcher (uses configured player or auto-detects)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	// Create TUI model
	model := tui.NewModel(state, launcher, cfg.UI.CastSize, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
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

func newClient(cfg *adapter.Config, apiKey string, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Options{
		BaseURL:      cfg.TMDB.BaseURL,
		APIKey:       apiKey,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Language:     cfg.TMDB.Language,
		RateLimit:    cfg.TMDB.RateLimit,
		Timeout:      cfg.TMDB.Timeout,
	}, logger)
}

// runSetupFlow asks for a TMDB API key, verifies it and saves it
func runSetupFlow(cfg *adapter.Config, stdin *bufio.Reader, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API key (v3 key or v4 read access token).")
	fmt.Println("Get one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		key, err := readSecret(stdin, int(os.Stdin.Fd()), "API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := verifyKeyWithSpinner(newClient(cfg, key, logger)); err != nil {
			fmt.Printf("\n✗ %v\n", err)
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("Please check the key and try again.")
				fmt.Println()
				continue
			}
			return err
		}

		if err := adapter.SaveAPIKey(cfg, key); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("✓ Configuration saved!")
		fmt.Println()
		return nil
	}
}

// readSecret reads a line without echo when fd is a terminal, otherwise
// from in
func readSecret(in *bufio.Reader, fd int, prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptUsername asks for a display name until a non-blank one is given
func promptUsername(in *bufio.Reader, out io.Writer, session *app.Session) error {
	for {
		fmt.Fprint(out, "Your name: ")
		input, err := in.ReadString('\n')
		if err != nil && input == "" {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if session.Login(input) {
			return nil
		}
		fmt.Fprintln(out, "Name cannot be empty. Please try again.")
	}
}

// verifyKeyWithSpinner checks the key against the genre endpoint with a visual spinner
func verifyKeyWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start verification in background
	go func() {
		_, err := client.Genres(ctx)
		resultCh <- err
	}()

	// Spinner animation
	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}

package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens trailer URLs in an external player or the browser
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // extra arguments for the configured player
	logger  *slog.Logger

	// swapped in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath is one way to start a player on a platform
type launchPath struct {
	path      string   // command name, or "open-a:AppName" for macOS apps
	openFlags []string // flags for macOS open, only with "open-a:"
}

// trailerPlayers lists players that can stream a YouTube URL directly
var trailerPlayers = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"haruna": {
		"linux": {{path: "haruna"}},
	},
}

// candidatePlayers is the preferred order per platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv"},
	"linux":   {"mpv", "celluloid", "haruna"},
	"windows": {"mpv"},
}

// NewLauncher creates a Launcher. An empty command means auto-detect, then browser.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Launch opens url with the configured player, a detected player, or the
// system default handler, in that order
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return fmt.Errorf("no trailer url")
	}

	if l.command != "" {
		name, args := l.configuredCommand(url)
		l.logger.Info("launching trailer", "command", name, "args", args)
		if err := l.start(name, args...); err != nil {
			return fmt.Errorf("failed to start %s: %w", l.command, err)
		}
		return nil
	}

	if player, err := l.detectAndLaunch(url); err == nil {
		l.logger.Info("launched trailer with detected player", "player", player)
		return nil
	}

	name, args := defaultCommand(runtime.GOOS, url)
	l.logger.Info("launching trailer with system default", "os", runtime.GOOS, "url", url)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// configuredCommand builds the command line for the configured player.
// On macOS a command that is not on PATH is treated as an app name.
func (l *Launcher) configuredCommand(url string) (string, []string) {
	args := append([]string{}, l.args...)

	if runtime.GOOS == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			return "open", openAppArgs(l.command, args, nil, url)
		}
	}

	return l.command, append(args, url)
}

// detectAndLaunch walks the candidate players for this platform
func (l *Launcher) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		for _, lp := range trailerPlayers[name][runtime.GOOS] {
			var err error
			if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				err = l.start("open", openAppArgs(app, nil, lp.openFlags, url)...)
			} else if _, err = l.lookPath(lp.path); err == nil {
				err = l.start(lp.path, url)
			}
			if err == nil {
				return name, nil
			}
			l.logger.Debug("player not available", "player", name, "path", lp.path, "error", err)
		}
	}

	return "", fmt.Errorf("no candidate players found")
}

// openAppArgs builds arguments for macOS "open -a"
func openAppArgs(app string, playerArgs, openFlags []string, url string) []string {
	args := append([]string{}, openFlags...)
	args = append(args, "-a", strings.TrimSuffix(filepath.Base(app), ".app"))
	if len(playerArgs) > 0 {
		args = append(args, "--args")
		args = append(args, playerArgs...)
	}
	return append(args, url)
}

// defaultCommand returns the platform's URL opener
func defaultCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}

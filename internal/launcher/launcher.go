// Package launcher opens links (a show's official site) outside the terminal.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoLink indicates a show without an official site
var ErrNoLink = errors.New("no link to open")

// Launcher opens URLs in the configured browser or the system default
type Launcher struct {
	command string   // Configured browser command, empty for system default
	args    []string // Extra arguments placed before the URL
	logger  *slog.Logger

	start func(*exec.Cmd) error
}

// NewLauncher creates a launcher. An empty command uses the system default
// handler (open, xdg-open or start).
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   (*exec.Cmd).Start, // Start async, don't wait
	}
}

// Open launches link. Only absolute http(s) URLs are accepted.
func (l *Launcher) Open(link string) error {
	if strings.TrimSpace(link) == "" {
		return ErrNoLink
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not a web link", link)
	}

	cmd := l.buildCommand(u.String())
	l.logger.Info("opening link", "command", cmd.Path, "args", cmd.Args[1:])
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to open link: %w", err)
	}
	return nil
}

func (l *Launcher) buildCommand(link string) *exec.Cmd {
	if l.command != "" {
		args := append(append([]string{}, l.args...), link)
		return exec.Command(l.command, args...)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", link)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", link)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", link)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tvshelf/tvshelf/internal/config"
	"github.com/tvshelf/tvshelf/internal/controller"
	"github.com/tvshelf/tvshelf/internal/launcher"
	"github.com/tvshelf/tvshelf/internal/log"
	"github.com/tvshelf/tvshelf/internal/repository"
	"github.com/tvshelf/tvshelf/internal/store"
	"github.com/tvshelf/tvshelf/internal/tui"
	"github.com/tvshelf/tvshelf/internal/tui/styles"
	"github.com/tvshelf/tvshelf/internal/tvmaze"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Args are the command line flags
type Args struct {
	Config    string `arg:"-c,--config" help:"path to config.yaml"`
	List      bool   `arg:"-l,--list" help:"print the catalog instead of starting the TUI"`
	Favorites bool   `arg:"-f,--favorites" help:"print stored favorites"`
	Page      int    `arg:"-p,--page" default:"0" help:"catalog page to print (0 is the first)"`
	Search    string `arg:"-s,--search" help:"print catalog search results for a show name"`
}

// Version implements go-arg's --version flag
func (Args) Version() string {
	return "tvshelf " + Version
}

// Description is shown at the top of --help
func (Args) Description() string {
	return "Browse the TVmaze catalog and keep a local list of favorite shows.\n"
}

func main() {
	var args Args
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args Args) error {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := log.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, logFile = log.NullLogger(), io.NopCloser(nil)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	logger.Info("starting tvshelf", "version", Version)

	client, err := tvmaze.NewClient(tvmaze.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		UserAgent: cfg.Catalog.UserAgent,
		Timeout:   cfg.Catalog.Timeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	favorites, err := store.NewFavoritesStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open favorites: %w", err)
	}
	repo := repository.New(client, favorites, logger)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Plain output when asked for, or when stdout is not a terminal
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if args.List || args.Favorites || args.Search != "" || args.Page > 0 || !interactive {
		return printListing(ctx, os.Stdout, repo, listingOptions{
			FavoritesOnly: args.Favorites,
			Query:         args.Search,
			Page:          args.Page,
		})
	}

	ctrl := controller.New(repo, logger)
	styles.SetTheme(cfg.UI.Theme)
	browser := launcher.NewLauncher(cfg.UI.Browser, cfg.UI.BrowserArgs, logger)
	model := tui.NewModel(ctx, ctrl, browser, logger, tui.ParseScreen(cfg.UI.DefaultView))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

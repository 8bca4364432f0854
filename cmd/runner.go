package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/telaflix/telaflix/internal/auth"
	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
	"github.com/telaflix/telaflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	catalog   services.Catalog
	mailer    services.Mailer
	assistant services.Assistant
	channels  services.ChannelLister
	store     *store.Store
	auth      *auth.Authenticator
	engine    *tasks.CatalogEngine
	logger    *log.Logger
	output    io.Writer

	// openURL hands playback off to the system browser; replaced in tests.
	openURL func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Catalog   services.Catalog
	Mailer    services.Mailer
	Assistant services.Assistant
	Channels  services.ChannelLister
	Store     *store.Store
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var authenticator *auth.Authenticator
	var engine *tasks.CatalogEngine
	if opts.Store != nil {
		authenticator = auth.New(opts.Store, opts.Mailer, opts.Logger)
		engine = tasks.NewCatalogEngine(opts.Catalog, opts.Store, opts.Logger)
	}

	return &Runner{
		config:    opts.Config,
		catalog:   opts.Catalog,
		mailer:    opts.Mailer,
		assistant: opts.Assistant,
		channels:  opts.Channels,
		store:     opts.Store,
		auth:      authenticator,
		engine:    engine,
		logger:    opts.Logger,
		output:    opts.Output,
		openURL:   shared.OpenBrowser,
	}
}

// SetLogger swaps the runner's logger. Used when the TUI owns the terminal
// and log lines have to go to a file instead.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, favoritesCommand, channelsCommand, usersCommand, assistantCommand, watchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

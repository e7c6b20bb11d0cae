// Package cli provides the command-line interface of the humanoid kick
// task: a sanity check of the evaluators, a random-policy evaluation on
// the Box2D sandbox, and a dump of the effective configuration.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/humanoidkick/internal/logging"
	"github.com/samuelfneumann/humanoidkick/kick"
)

// Version information set at build time.
var Version = "dev"

// globalOptions holds the flags shared by every command
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "kick",
		Short: "Reward, termination and observation evaluators for a humanoid kick task",
		Long: `kick evaluates the per-step signals of a humanoid-kicks-a-ball
reinforcement learning task: the shaped reward with its one-shot kick
latch, the fall and timeout predicates, and the flat observation vector.

Every command reads an optional YAML or JSON configuration file which
overrides the default reward weights, shaping parameters, termination
thresholds and observation blocks field by field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.opts.configPath, "config", "c", "",
		"Path to a YAML or JSON configuration file")
	flags.StringVar(&app.opts.logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.opts.logFormat, "log-format", "console",
		"Log format (console or json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newSanityCmd(),
		app.newEvalCmd(),
		app.newConfigCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// config returns the configuration named by the --config flag, or the
// default configuration if no file was given
func (a *App) config() (kick.Config, error) {
	if a.opts.configPath == "" {
		return kick.DefaultConfig(), nil
	}

	c, err := kick.LoadConfig(a.opts.configPath)
	if err != nil {
		return kick.Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// logger returns a logger writing to the application's error output
func (a *App) logger() (*bolt.Logger, error) {
	return logging.New(logging.Config{
		Level:  a.opts.logLevel,
		Format: a.opts.logFormat,
		Output: a.stderr,
	})
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "kick version %s\n", Version)
		},
	}
}

// newConfigCmd creates the config command.
func (a *App) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration every other command would run with, after
applying the file given with --config on top of the defaults.

Examples:
  # Print the defaults
  kick config

  # Check an override file
  kick config -c kick.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.config()
			if err != nil {
				return err
			}
			return c.WriteYAML(a.stdout)
		},
	}
}

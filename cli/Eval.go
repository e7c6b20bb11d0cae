package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/humanoidkick/environment/box2d/kicker"
	"github.com/samuelfneumann/humanoidkick/experiment"
	"github.com/samuelfneumann/humanoidkick/experiment/tracker"
	"github.com/samuelfneumann/humanoidkick/internal/logging"
	"github.com/samuelfneumann/humanoidkick/kick"
	ts "github.com/samuelfneumann/humanoidkick/timestep"
	"github.com/samuelfneumann/humanoidkick/utils/progressbar"
)

// evalOptions holds options for the eval command.
type evalOptions struct {
	steps       uint
	seed        uint64
	discount    float64
	dataDir     string
	renderEvery int
	progress    bool
}

// newEvalCmd creates the eval command.
func (a *App) newEvalCmd() *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a uniform random policy on the 2-D kick sandbox",
		Long: `Run a uniform random policy on the Box2D kick sandbox for a fixed
number of steps and report the mean return, the kick rate and the mean
per-episode reward terms. An interrupt stops the run after the current
episode; the finished episodes are still saved and summarised.

Each episode ends when the humanoid falls or the step limit of the
configuration is reached. With --data-dir the episodic returns, episode
lengths, kick records and reward terms are saved there as gob files.

Examples:
  kick eval --steps 5000
  kick eval --steps 1000 --data-dir runs/random --render-every 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(cmd.Context(), opts)
		},
	}

	cmd.Flags().UintVarP(&opts.steps, "steps", "n", 1000,
		"Total number of environment steps")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed")
	cmd.Flags().Float64Var(&opts.discount, "discount", 0.99,
		"Discount of non-terminal steps")
	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "o", "",
		"Directory to save tracked data and rendered frames in")
	cmd.Flags().IntVar(&opts.renderEvery, "render-every", 0,
		"Save a PNG frame every this many steps (0 disables rendering)")
	cmd.Flags().BoolVar(&opts.progress, "progress", false,
		"Display a progress bar")

	return cmd
}

// eval runs the random policy and prints a summary of the episodes
func (a *App) eval(ctx context.Context, opts *evalOptions) error {
	if opts.steps == 0 {
		return fmt.Errorf("eval: steps must be positive")
	}
	if opts.renderEvery < 0 {
		return fmt.Errorf("eval: render-every must be non-negative, got %v",
			opts.renderEvery)
	}
	if opts.discount < 0 || opts.discount > 1 {
		return fmt.Errorf("eval: discount must be in [0, 1], got %v",
			opts.discount)
	}

	c, err := a.config()
	if err != nil {
		return err
	}
	logger, err := a.logger()
	if err != nil {
		return err
	}

	dir := opts.dataDir
	if dir == "" {
		dir = "."
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("eval: could not create data directory: %w", err)
	}

	env, _ := kicker.New(kicker.DefaultStarter(opts.seed), c, opts.discount)
	policy := experiment.NewUniform(env.ActionSpec(), opts.seed+1)

	returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir, "length.bin"))
	kicks := tracker.NewKicks(filepath.Join(dir, "kicks.bin"))
	terms := tracker.NewTerms(filepath.Join(dir, "terms.bin"))

	o := experiment.NewOnline(env, policy, opts.steps, logger, returns,
		lengths, kicks, terms)

	var bar *progressbar.ManualProgressBar
	if opts.progress {
		bar = progressbar.NewManualProgressBar(a.stderr, 40, int(opts.steps))
	}

	var renderErr error
	frames := 0
	o.OnStep = func(step ts.TimeStep) {
		if bar != nil {
			bar.Increment()
			bar.Display()
		}
		if opts.renderEvery == 0 || renderErr != nil {
			return
		}
		if int(o.Steps())%opts.renderEvery == 0 {
			path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", frames))
			renderErr = env.Render(path)
			frames++
		}
	}

	done := false
	for !done {
		select {
		case <-ctx.Done():
			logging.Msg(logger.Warn(), "evaluation interrupted",
				logging.Component("eval"),
				logging.ErrorField(ctx.Err()),
			)
			done = true
			continue
		default:
		}

		done = o.RunEpisode()
		if renderErr != nil {
			return fmt.Errorf("eval: %w", renderErr)
		}
	}
	if bar != nil {
		bar.Close()
	}

	if opts.dataDir != "" {
		if err := o.Save(); err != nil {
			return fmt.Errorf("eval: %w", err)
		}
		logging.Msg(logger.Info(), "saved tracked data",
			logging.Component("eval"),
			func(e *bolt.Event) *bolt.Event { return e.Str("dir", dir) },
		)
	}

	// An interrupted run keeps its finished episodes and exits cleanly
	a.printSummary(o.Steps(), returns, kicks, terms, frames)
	return nil
}

// printSummary writes the statistics of all finished episodes
func (a *App) printSummary(steps uint, returns *tracker.Return,
	kicks *tracker.Kicks, terms *tracker.Terms, frames int) {
	episodes := len(returns.Data())

	fmt.Fprintln(a.stdout, "steps:", steps)
	fmt.Fprintln(a.stdout, "episodes:", episodes)
	if frames > 0 {
		fmt.Fprintln(a.stdout, "frames:", frames)
	}
	if episodes == 0 {
		return
	}

	fmt.Fprintf(a.stdout, "mean_return: %.4f\n", stat.Mean(returns.Data(), nil))
	fmt.Fprintf(a.stdout, "kick_rate: %.4f\n", kicks.Rate())

	means := terms.Data().Means()
	for i, name := range kick.TermNames {
		fmt.Fprintf(a.stdout, "mean_%s: %.4f\n", name, means[i])
	}
}

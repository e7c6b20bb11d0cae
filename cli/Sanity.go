package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/humanoidkick/internal/logging"
	"github.com/samuelfneumann/humanoidkick/kick"
)

// sanityOptions holds options for the sanity command.
type sanityOptions struct {
	seed       uint64
	joints     int
	actionDims int
}

// newSanityCmd creates the sanity command.
func (a *App) newSanityCmd() *cobra.Command {
	opts := &sanityOptions{}

	cmd := &cobra.Command{
		Use:   "sanity",
		Short: "Evaluate reward, termination and observation on random state",
		Long: `Run every evaluator once on randomly sampled state vectors and
print the results. The humanoid is reported upright and in contact with
the ball, so the kick fires whenever the sampled ball speed is above
the minimum contact speed.

Examples:
  kick sanity
  kick sanity --seed 3 --joints 23 --action-dims 23`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sanity(opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed")
	cmd.Flags().IntVar(&opts.joints, "joints", 10, "Number of joints")
	cmd.Flags().IntVar(&opts.actionDims, "action-dims", 16,
		"Dimension of the action vector")

	return cmd
}

// sanity evaluates the reward, the observation and the termination
// predicates once
func (a *App) sanity(opts *sanityOptions) error {
	if opts.joints < 0 || opts.actionDims < 0 {
		return fmt.Errorf("sanity: joints and action dimensions must be " +
			"non-negative")
	}

	c, err := a.config()
	if err != nil {
		return err
	}
	logger, err := a.logger()
	if err != nil {
		return err
	}

	src := rand.NewSource(opts.seed)
	normal := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}
	noise := distuv.Normal{Mu: 0.0, Sigma: 0.1, Src: src}

	sample := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = normal.Rand()
		}
		return v
	}
	vec := func(d distuv.Normal) r3.Vec {
		return r3.Vec{X: d.Rand(), Y: d.Rand(), Z: d.Rand()}
	}

	q, qd := sample(opts.joints), sample(opts.joints)
	baseLinVel, baseAngVel := vec(normal), vec(normal)
	gravity := r3.Vec{X: 0.0, Y: 0.0, Z: -1.0}

	ballPosRel := vec(normal)
	ballVelPrev := vec(normal)
	ballVel := r3.Add(ballVelPrev, vec(noise))

	footRel := vec(normal)

	var action mat.Vector
	if opts.actionDims > 0 {
		action = mat.NewVecDense(opts.actionDims, sample(opts.actionDims))
	}

	total, terms, kicked := kick.ComputeReward(kick.RewardInput{
		BallMass:        0.45,
		BallVel:         ballVel,
		PrevBallVel:     ballVelPrev,
		UpDot:           0.85,
		BaseAngVel:      baseAngVel,
		Action:          action,
		FootBallDist:    r3.Norm(footRel),
		Alive:           true,
		FootBallContact: true,
	}, false, c.Weights, c.Params)

	obs := kick.BuildObservation(kick.ObsInput{
		Q:                q,
		QD:               qd,
		BaseLinVel:       baseLinVel,
		BaseAngVel:       baseAngVel,
		BallPosRel:       ballPosRel,
		ProjectedGravity: &gravity,
		BallVel:          &ballVel,
		FootPosRelToBall: &footRel,
	}, c.Observation)

	fallen := kick.IsFallen(0.9, 0.85, c.Termination)
	timeout := kick.IsTimeout(10, c.Termination)

	logging.Msg(logger.Debug(), "sanity check", logging.Terms(terms))

	fmt.Fprintln(a.stdout, "Sanity check OK")
	fmt.Fprintln(a.stdout, "obs_dim:", len(obs))
	fmt.Fprintln(a.stdout, "reward_total:", total)
	fmt.Fprintln(a.stdout, "kicked_next:", kicked)
	fmt.Fprintln(a.stdout, "fallen:", fallen, "timeout:", timeout)
	fmt.Fprintln(a.stdout, "terms:", terms)

	return nil
}

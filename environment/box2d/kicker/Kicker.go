// Package kicker provides a planar Box2D sandbox in which a humanoid
// standing on one leg kicks a ball with the other.
package kicker

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samuelfneumann/humanoidkick/environment"
	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
	"github.com/samuelfneumann/humanoidkick/utils/floatutils"
)

const (
	FPS float64 = 50

	VelocityIterations int = 8
	PositionIterations int = 3

	XGravity float64 = 0.0
	YGravity float64 = -9.81

	// Humanoid geometry, in meters. The torso body's origin is the hip.
	HipHeight       float64 = 0.9
	TorsoHalfWidth  float64 = 0.12
	TorsoHalfHeight float64 = 0.3
	LegHalfWidth    float64 = 0.05
	FootHalfWidth   float64 = 0.12
	FootHalfHeight  float64 = 0.02
	BodyDensity     float64 = 200.0

	KickLegHalfWidth  float64 = 0.04
	KickLegHalfLength float64 = 0.42
	KickLegDensity    float64 = 100.0

	// Hip joint
	HipLowerAngle float64 = -1.2
	HipUpperAngle float64 = 1.2
	MaxHipSpeed   float64 = 8.0
	MaxHipTorque  float64 = 150.0

	MaxBalanceTorque float64 = 30.0

	BallRadius      float64 = 0.11
	BallMass        float64 = 0.45
	BallFriction    float64 = 0.4
	BallRestitution float64 = 0.5

	GroundFriction float64 = 1.0
	GroundMinX     float64 = -5.0
	GroundMaxX     float64 = 15.0

	// Action
	MaxContinuousAction float64 = 1.0
	MinContinuousAction float64 = -MaxContinuousAction
	ActionDims          int     = 2

	// Joint vectors hold only the hip
	JointDims int = 1

	// Default starting values
	InitialBallDistance float64 = 0.35
	InitialLean         float64 = 0.0
)

// Collision categories. The humanoid's parts do not collide with each
// other.
const (
	groundCategory   uint16 = 0x0001
	humanoidCategory uint16 = 0x0002
	ballCategory     uint16 = 0x0004
)

var (
	// BallDistanceBounds bounds the horizontal distance from the hip to
	// the ball center at the start of an episode
	BallDistanceBounds = r1.Interval{Min: 0.2, Max: 1.5}

	// LeanBounds bounds the initial torso lean at the start of an
	// episode
	LeanBounds = r1.Interval{Min: -0.3, Max: 0.3}
)

// DefaultStarter returns a Starter which always places the ball at
// InitialBallDistance with the humanoid upright
func DefaultStarter(seed uint64) environment.Starter {
	return environment.NewUniformStarter([]r1.Interval{
		{Min: InitialBallDistance, Max: InitialBallDistance},
		{Min: InitialLean, Max: InitialLean},
	}, seed)
}

// Kicker implements the kick sandbox. A humanoid torso with a rigid
// stance leg stands on flat ground with a ball in front of it. The
// kick leg hangs from the hip on a motorized revolute joint.
//
// Actions are 2-dimensional and continuous, bounded in [-1, 1]:
//
//  1. The hip motor speed as a fraction of MaxHipSpeed. Positive values
//     swing the kick leg toward the ball.
//  2. A balance torque on the torso as a fraction of MaxBalanceTorque.
//
// Actions outside of [-1, 1] are clipped, and the reward's action
// penalty is computed on the clipped action.
//
// The plane of motion is mapped into 3D as (x, y) -> (x, 0, y), so the
// up axis is z and positive planar rotation is rotation about -y. Joint
// positions and velocities hold the hip angle and speed only.
//
// Any Starter used with Kicker must return a vector of 2 elements in
// the following order:
//
//  1. The horizontal distance from the hip to the ball center, in
//     BallDistanceBounds. The default is InitialBallDistance.
//  2. The initial lean of the humanoid in radians, in LeanBounds. The
//     humanoid pivots about its stance foot. The default is
//     InitialLean.
//
// Kicker implements the environment.Environment interface.
type Kicker struct {
	environment.Starter
	episode *environment.Episode

	world    *box2d.B2World
	contacts *contactDetector

	ground       *box2d.B2Body
	torso        *box2d.B2Body
	torsoFixture *box2d.B2Fixture
	leg          *box2d.B2Body
	legFixture   *box2d.B2Fixture
	ball         *box2d.B2Body
	ballFixture  *box2d.B2Fixture
	hip          *box2d.B2RevoluteJoint

	actionBounds r1.Interval
	snapshot     environment.Snapshot
}

// New returns a new Kicker which samples starting states from s,
// evaluates steps with config and reports discount on non-terminal
// steps. The environment starts ready to use.
func New(s environment.Starter, config kick.Config,
	discount float64) (*Kicker, timestep.TimeStep) {
	k := &Kicker{
		Starter: s,
		episode: environment.NewEpisode(config, discount),
		actionBounds: r1.Interval{
			Min: MinContinuousAction,
			Max: MaxContinuousAction,
		},
	}

	step := k.Reset()
	return k, step
}

// Reset builds a new world from a starting state and begins a new
// episode
func (k *Kicker) Reset() timestep.TimeStep {
	start := k.Start()
	if err := validateStart(start); err != nil {
		panic(fmt.Sprintf("reset: %v", err))
	}
	ballDistance, lean := start.AtVec(0), start.AtVec(1)

	world := box2d.MakeB2World(box2d.B2Vec2{X: XGravity, Y: YGravity})
	k.world = &world
	k.contacts = newContactDetector(k)
	k.world.SetContactListener(k.contacts)

	k.createGround()
	k.createHumanoid(lean)
	k.createBall(ballDistance)

	k.snapshot = k.observe()
	return k.episode.Begin(k.snapshot)
}

func (k *Kicker) createGround() {
	groundDef := box2d.NewB2BodyDef()
	groundDef.Type = 0 // Static body
	k.ground = k.world.CreateBody(groundDef)

	groundShape := box2d.NewB2EdgeShape()
	groundShape.Set(box2d.MakeB2Vec2(GroundMinX, 0.0),
		box2d.MakeB2Vec2(GroundMaxX, 0.0))

	groundFix := box2d.MakeB2FixtureDef()
	groundFix.Shape = groundShape
	groundFix.Friction = GroundFriction
	filter := box2d.MakeB2Filter()
	filter.CategoryBits = groundCategory
	filter.MaskBits = humanoidCategory | ballCategory
	groundFix.Filter = filter
	k.ground.CreateFixtureFromDef(&groundFix)
}

// createHumanoid creates the torso and stance leg as one body with its
// origin at the hip, leaning by lean radians about the stance foot,
// and hangs the kick leg from the hip
func (k *Kicker) createHumanoid(lean float64) {
	hipX := -HipHeight * math.Sin(lean)
	hipY := HipHeight * math.Cos(lean)

	torsoDef := box2d.MakeB2BodyDef()
	torsoDef.Type = 2 // Dynamic body
	torsoDef.Position = box2d.MakeB2Vec2(hipX, hipY)
	torsoDef.Angle = lean
	k.torso = k.world.CreateBody(&torsoDef)

	filter := box2d.MakeB2Filter()
	filter.CategoryBits = humanoidCategory
	filter.MaskBits = groundCategory | ballCategory

	// Torso above the hip
	torsoShape := box2d.NewB2PolygonShape()
	torsoShape.SetAsBoxFromCenterAndAngle(TorsoHalfWidth, TorsoHalfHeight,
		box2d.MakeB2Vec2(0.0, TorsoHalfHeight), 0.0)
	k.torsoFixture = k.torso.CreateFixtureFromDef(
		k.fixtureDef(torsoShape, BodyDensity, filter))

	// Stance leg from the hip down to the foot
	legLength := HipHeight - 2*FootHalfHeight
	stanceShape := box2d.NewB2PolygonShape()
	stanceShape.SetAsBoxFromCenterAndAngle(LegHalfWidth, legLength/2,
		box2d.MakeB2Vec2(0.0, -legLength/2), 0.0)
	k.torso.CreateFixtureFromDef(k.fixtureDef(stanceShape, BodyDensity,
		filter))

	// Foot plate resting on the ground
	footShape := box2d.NewB2PolygonShape()
	footShape.SetAsBoxFromCenterAndAngle(FootHalfWidth, FootHalfHeight,
		box2d.MakeB2Vec2(0.0, -HipHeight+FootHalfHeight), 0.0)
	k.torso.CreateFixtureFromDef(k.fixtureDef(footShape, BodyDensity,
		filter))

	// Kick leg hanging from the hip
	legDef := box2d.MakeB2BodyDef()
	legDef.Type = 2
	legDef.Angle = lean
	legDef.Position = k.torso.GetWorldPoint(
		box2d.MakeB2Vec2(0.0, -KickLegHalfLength))
	k.leg = k.world.CreateBody(&legDef)

	kickShape := box2d.NewB2PolygonShape()
	kickShape.SetAsBox(KickLegHalfWidth, KickLegHalfLength)
	k.legFixture = k.leg.CreateFixtureFromDef(k.fixtureDef(kickShape,
		KickLegDensity, filter))

	// Motorized hip
	rjd := box2d.MakeB2RevoluteJointDef()
	rjd.BodyA = k.torso
	rjd.BodyB = k.leg
	rjd.LocalAnchorA = box2d.MakeB2Vec2(0.0, 0.0)
	rjd.LocalAnchorB = box2d.MakeB2Vec2(0.0, KickLegHalfLength)
	rjd.EnableMotor = true
	rjd.EnableLimit = true
	rjd.MaxMotorTorque = MaxHipTorque
	rjd.MotorSpeed = 0.0
	rjd.LowerAngle = HipLowerAngle
	rjd.UpperAngle = HipUpperAngle
	k.hip = k.world.CreateJoint(&rjd).(*box2d.B2RevoluteJoint)
}

// createBall places the ball on the ground at distance in front of
// the hip
func (k *Kicker) createBall(distance float64) {
	ballDef := box2d.MakeB2BodyDef()
	ballDef.Type = 2
	ballDef.Position = box2d.MakeB2Vec2(k.torso.GetPosition().X+distance,
		BallRadius)
	ballDef.Bullet = true
	k.ball = k.world.CreateBody(&ballDef)

	ballShape := box2d.NewB2CircleShape()
	ballShape.M_radius = BallRadius

	filter := box2d.MakeB2Filter()
	filter.CategoryBits = ballCategory
	filter.MaskBits = groundCategory | humanoidCategory

	density := BallMass / (math.Pi * BallRadius * BallRadius)
	ballFix := k.fixtureDef(ballShape, density, filter)
	ballFix.Friction = BallFriction
	ballFix.Restitution = BallRestitution
	k.ballFixture = k.ball.CreateFixtureFromDef(ballFix)
}

func (k *Kicker) fixtureDef(shape box2d.B2ShapeInterface, density float64,
	filter box2d.B2Filter) *box2d.B2FixtureDef {
	fix := box2d.MakeB2FixtureDef()
	fix.Shape = shape
	fix.Density = density
	fix.Friction = GroundFriction
	fix.Restitution = 0.0
	fix.Filter = filter
	return &fix
}

// Step takes a single environmental step
func (k *Kicker) Step(a *mat.VecDense) (timestep.TimeStep, bool) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: illegal action dimension \n\twant(%v) "+
			"\n\thave(%v)", ActionDims, a.Len()))
	}
	action := floatutils.ClipVec(a, k.actionBounds)

	k.hip.SetMotorSpeed(action.AtVec(0) * MaxHipSpeed)
	k.torso.ApplyTorque(action.AtVec(1)*MaxBalanceTorque, true)

	k.contacts.beginStep()
	k.world.Step(1.0/FPS, VelocityIterations, PositionIterations)

	k.snapshot = k.observe()
	t := k.episode.Advance(k.snapshot, action)

	return t, t.Last()
}

// observe derives the physical state snapshot from the world
func (k *Kicker) observe() environment.Snapshot {
	pos := k.torso.GetPosition()
	vel := k.torso.GetLinearVelocity()
	angle := k.torso.GetAngle()

	ballPos := k.ball.GetPosition()
	ballVel := k.ball.GetLinearVelocity()
	foot := k.leg.GetWorldPoint(box2d.MakeB2Vec2(0.0, -KickLegHalfLength))
	footRel := to3D(box2d.B2Vec2Sub(foot, ballPos))

	// World gravity direction seen from the torso
	gravity := k.torso.GetLocalVector(box2d.MakeB2Vec2(0.0, -1.0))

	return environment.Snapshot{
		Q:                []float64{k.hip.GetJointAngle()},
		QD:               []float64{k.hip.GetJointSpeed()},
		BaseHeight:       pos.Y,
		BaseLinVel:       to3D(vel),
		BaseAngVel:       r3.Vec{Y: -k.torso.GetAngularVelocity()},
		UpDot:            math.Cos(angle),
		ProjectedGravity: to3D(gravity),
		BallMass:         k.ball.GetMass(),
		BallPosRel:       to3D(box2d.B2Vec2Sub(ballPos, pos)),
		BallVel:          to3D(ballVel),
		FootPosRelToBall: footRel,
		FootBallDist:     math.Max(0.0, r3.Norm(footRel)-BallRadius),
		FootBallContact:  k.contacts.footBallContact(),
		Alive:            !k.contacts.torsoGrounded(),
	}
}

// Snapshot returns the physical state snapshot of the last step
func (k *Kicker) Snapshot() environment.Snapshot {
	return k.snapshot
}

// LastTimeStep returns the last timestep taken in the environment
func (k *Kicker) LastTimeStep() timestep.TimeStep {
	return k.episode.LastTimeStep()
}

// Episode returns the record of the current episode
func (k *Kicker) Episode() *environment.Episode {
	return k.episode
}

// ActionSpec returns the action specification of the environment
func (k *Kicker) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{
		MinContinuousAction,
		MinContinuousAction,
	})
	upperBound := mat.NewVecDense(ActionDims, []float64{
		MaxContinuousAction,
		MaxContinuousAction,
	})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment. Observations are unbounded.
func (k *Kicker) ObservationSpec() environment.Spec {
	features := k.episode.Config().Observation.Len(JointDims, JointDims)
	shape := mat.NewVecDense(features, nil)

	lowerBound := mat.NewVecDense(features, nil)
	upperBound := mat.NewVecDense(features, nil)
	for i := 0; i < features; i++ {
		lowerBound.SetVec(i, math.Inf(-1))
		upperBound.SetVec(i, math.Inf(1))
	}

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

func to3D(v box2d.B2Vec2) r3.Vec {
	return r3.Vec{X: v.X, Y: 0.0, Z: v.Y}
}

func validateStart(state *mat.VecDense) error {
	if state.Len() != 2 {
		return fmt.Errorf("starting values should be 2-dimensional but "+
			"got %v dimensions", state.Len())
	}

	if !contains(BallDistanceBounds, state.AtVec(0)) {
		return fmt.Errorf("ball distance out of bounds, expected d ϵ "+
			"[%v, %v] but got d = %v", BallDistanceBounds.Min,
			BallDistanceBounds.Max, state.AtVec(0))
	}

	if !contains(LeanBounds, state.AtVec(1)) {
		return fmt.Errorf("lean out of bounds, expected θ ϵ [%v, %v] "+
			"but got θ = %v", LeanBounds.Min, LeanBounds.Max,
			state.AtVec(1))
	}

	return nil
}

func contains(interval r1.Interval, x float64) bool {
	return x >= interval.Min && x <= interval.Max
}

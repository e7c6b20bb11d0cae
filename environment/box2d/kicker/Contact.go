package kicker

import "github.com/ByteArena/box2d"

// contactDetector tracks the contacts the kick evaluators care about.
// Contacts are counted rather than flagged since a pair of bodies can
// touch through more than one contact at a time.
type contactDetector struct {
	env *Kicker

	footBall     int
	footBallStep bool // a foot-ball contact began during the current step
	torsoGround  int
}

func newContactDetector(k *Kicker) *contactDetector {
	return &contactDetector{env: k}
}

// beginStep must be called before each physics step
func (c *contactDetector) beginStep() {
	c.footBallStep = false
}

// footBallContact returns whether the kick leg touches the ball or
// touched it at any time during the last physics step. Fast kicks can
// begin and end a contact within a single step.
func (c *contactDetector) footBallContact() bool {
	return c.footBall > 0 || c.footBallStep
}

func (c *contactDetector) torsoGrounded() bool {
	return c.torsoGround > 0
}

func (c *contactDetector) isPair(contact box2d.B2ContactInterface,
	a, b *box2d.B2Fixture) bool {
	fixA, fixB := contact.GetFixtureA(), contact.GetFixtureB()
	return (fixA == a && fixB == b) || (fixA == b && fixB == a)
}

func (c *contactDetector) BeginContact(contact box2d.B2ContactInterface) {
	// Check if the kick leg touched the ball
	if c.isPair(contact, c.env.legFixture, c.env.ballFixture) {
		c.footBall++
		c.footBallStep = true
	}

	// Check if the torso touched the ground
	if c.env.torsoFixture == contact.GetFixtureA() ||
		c.env.torsoFixture == contact.GetFixtureB() {
		if c.env.ground == contact.GetFixtureA().GetBody() ||
			c.env.ground == contact.GetFixtureB().GetBody() {
			c.torsoGround++
		}
	}
}

func (c *contactDetector) EndContact(contact box2d.B2ContactInterface) {
	if c.isPair(contact, c.env.legFixture, c.env.ballFixture) &&
		c.footBall > 0 {
		c.footBall--
	}

	if c.env.torsoFixture == contact.GetFixtureA() ||
		c.env.torsoFixture == contact.GetFixtureB() {
		if (c.env.ground == contact.GetFixtureA().GetBody() ||
			c.env.ground == contact.GetFixtureB().GetBody()) &&
			c.torsoGround > 0 {
			c.torsoGround--
		}
	}
}

func (c *contactDetector) PreSolve(contact box2d.B2ContactInterface,
	oldManifold box2d.B2Manifold) {
}

func (c *contactDetector) PostSolve(contact box2d.B2ContactInterface,
	impulse *box2d.B2ContactImpulse) {
}

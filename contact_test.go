package phys2d_test

import (
	"math"
	"testing"

	"github.com/phys2d/phys2d"
)

type recordingListener struct {
	begins    int
	ends      int
	preSolves int
	lastOld   phys2d.Manifold
}

func (l *recordingListener) BeginContact(contact phys2d.Contact) { l.begins++ }
func (l *recordingListener) EndContact(contact phys2d.Contact)   { l.ends++ }

func (l *recordingListener) PreSolve(contact phys2d.Contact, oldManifold *phys2d.Manifold) {
	l.preSolves++
	l.lastOld = *oldManifold
}

func (l *recordingListener) PostSolve(contact phys2d.Contact, impulse *phys2d.ContactImpulse) {}

func makeCircleBody(t *testing.T, x, y, radius float64) (*phys2d.Body, *phys2d.Fixture) {
	t.Helper()

	bd := phys2d.MakeBodyDef()
	bd.Type = phys2d.DynamicBody
	bd.Position = phys2d.MakeVec2(x, y)
	body := phys2d.NewBody(&bd)

	fixture := body.CreateFixture(phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), radius), 1.0)
	return body, fixture
}

func TestNewContactDispatch(t *testing.T) {
	circleBody, circleFixture := makeCircleBody(t, 0.0, 0.0, 0.5)
	_ = circleBody

	bd := phys2d.MakeBodyDef()
	bd.Type = phys2d.DynamicBody
	polyBody := phys2d.NewBody(&bd)
	box := phys2d.NewPolygonShape()
	box.SetAsBox(0.5, 0.5)
	polyFixture := polyBody.CreateFixture(box, 1.0)

	// The secondary ordering swaps the fixtures so the primary kind is A.
	contact := phys2d.NewContact(circleFixture, 0, polyFixture, 0)
	if contact == nil {
		t.Fatal("expected a contact for circle-polygon")
	}
	if contact.FixtureA() != polyFixture || contact.FixtureB() != circleFixture {
		t.Error("secondary pair was not swapped to primary order")
	}

	contact = phys2d.NewContact(polyFixture, 0, circleFixture, 0)
	if contact == nil {
		t.Fatal("expected a contact for polygon-circle")
	}
	if contact.FixtureA() != polyFixture {
		t.Error("primary pair should keep its order")
	}
}

func TestNewContactUnregisteredPairs(t *testing.T) {
	bd := phys2d.MakeBodyDef()
	edgeBodyA := phys2d.NewBody(&bd)
	edgeBodyB := phys2d.NewBody(&bd)

	edgeA := edgeBodyA.CreateFixture(phys2d.NewEdgeShape(phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0)), 0.0)
	edgeB := edgeBodyB.CreateFixture(phys2d.NewEdgeShape(phys2d.MakeVec2(-1.0, 1.0), phys2d.MakeVec2(1.0, 1.0)), 0.0)

	if phys2d.NewContact(edgeA, 0, edgeB, 0) != nil {
		t.Error("edge-edge pairs have no collision routine and must yield nil")
	}

	chain := phys2d.NewChainShape()
	chain.CreateChain([]phys2d.Vec2{
		phys2d.MakeVec2(-1.0, 2.0),
		phys2d.MakeVec2(0.0, 2.0),
		phys2d.MakeVec2(1.0, 2.0),
	})
	chainBody := phys2d.NewBody(&bd)
	chainFixture := chainBody.CreateFixture(chain, 0.0)

	if phys2d.NewContact(edgeA, 0, chainFixture, 0) != nil {
		t.Error("edge-chain pairs must yield nil")
	}
	if phys2d.NewContact(chainFixture, 0, chainFixture, 1) != nil {
		t.Error("chain-chain pairs must yield nil")
	}
}

func TestContactBeginEndTransitions(t *testing.T) {
	bodyA, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)
	bodyB, fixtureB := makeCircleBody(t, 1.5, 0.0, 1.0)
	_ = bodyA

	contact := phys2d.NewContact(fixtureA, 0, fixtureB, 0)
	listener := &recordingListener{}

	contact.Update(listener)
	if !contact.IsTouching() {
		t.Fatal("overlapping circles should be touching")
	}
	if listener.begins != 1 {
		t.Errorf("begins = %d, want 1", listener.begins)
	}
	if listener.preSolves != 1 {
		t.Errorf("preSolves = %d, want 1", listener.preSolves)
	}

	// Still touching: no new begin, but PreSolve fires again.
	contact.Update(listener)
	if listener.begins != 1 {
		t.Errorf("begins = %d after steady update, want 1", listener.begins)
	}
	if listener.preSolves != 2 {
		t.Errorf("preSolves = %d, want 2", listener.preSolves)
	}
	if listener.ends != 0 {
		t.Errorf("ends = %d, want 0", listener.ends)
	}

	// Separate the bodies: exactly one end, no PreSolve.
	bodyB.SetTransform(phys2d.MakeVec2(5.0, 0.0), 0.0)
	contact.Update(listener)
	if contact.IsTouching() {
		t.Error("separated circles should not be touching")
	}
	if listener.ends != 1 {
		t.Errorf("ends = %d, want 1", listener.ends)
	}
	if listener.preSolves != 2 {
		t.Errorf("preSolves = %d after separation, want 2", listener.preSolves)
	}

	// And nothing more once separated.
	contact.Update(listener)
	if listener.begins != 1 || listener.ends != 1 {
		t.Errorf("events after steady separation: begins = %d, ends = %d", listener.begins, listener.ends)
	}
}

func TestContactWarmStartImpulseCarry(t *testing.T) {
	_, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)
	_, fixtureB := makeCircleBody(t, 1.5, 0.0, 1.0)

	contact := phys2d.NewContact(fixtureA, 0, fixtureB, 0)
	contact.Update(nil)

	manifold := contact.GetManifold()
	if manifold.PointCount != 1 {
		t.Fatalf("point count = %d, want 1", manifold.PointCount)
	}

	// Pretend the solver accumulated impulses on this point.
	manifold.Points[0].NormalImpulse = 1.5
	manifold.Points[0].TangentImpulse = -0.25

	contact.Update(nil)
	if got := contact.GetManifold().Points[0].NormalImpulse; got != 1.5 {
		t.Errorf("normal impulse = %v, want 1.5 carried by id", got)
	}
	if got := contact.GetManifold().Points[0].TangentImpulse; got != -0.25 {
		t.Errorf("tangent impulse = %v, want -0.25 carried by id", got)
	}
}

func TestContactWakesBodiesOnTransition(t *testing.T) {
	bodyA, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)
	bodyB, fixtureB := makeCircleBody(t, 1.5, 0.0, 1.0)

	bodyA.SetAwake(false)
	bodyB.SetAwake(false)

	contact := phys2d.NewContact(fixtureA, 0, fixtureB, 0)
	contact.Update(nil)

	if !bodyA.IsAwake() || !bodyB.IsAwake() {
		t.Error("a touch transition must wake both bodies")
	}
}

func TestSensorContact(t *testing.T) {
	_, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)

	bd := phys2d.MakeBodyDef()
	bd.Type = phys2d.DynamicBody
	bd.Position = phys2d.MakeVec2(0.5, 0.0)
	bodyB := phys2d.NewBody(&bd)

	fd := phys2d.MakeFixtureDef()
	fd.Shape = phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 1.0)
	fd.IsSensor = true
	sensorFixture := bodyB.CreateFixtureFromDef(&fd)

	contact := phys2d.NewContact(fixtureA, 0, sensorFixture, 0)
	listener := &recordingListener{}
	contact.Update(listener)

	if !contact.IsTouching() {
		t.Error("overlapping sensor should report touching")
	}
	if contact.GetManifold().PointCount != 0 {
		t.Error("sensor contacts must not generate manifold points")
	}
	if listener.begins != 1 {
		t.Errorf("begins = %d, want 1", listener.begins)
	}
	if listener.preSolves != 0 {
		t.Errorf("preSolves = %d, want 0 for sensors", listener.preSolves)
	}
}

func TestContactMixing(t *testing.T) {
	if got := phys2d.MixFriction(0.5, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("MixFriction(0.5, 0.5) = %v, want 0.5", got)
	}
	if got := phys2d.MixFriction(0.0, 1.0); got != 0.0 {
		t.Errorf("MixFriction(0, 1) = %v, want 0", got)
	}
	if got := phys2d.MixRestitution(0.2, 0.8); got != 0.8 {
		t.Errorf("MixRestitution(0.2, 0.8) = %v, want 0.8", got)
	}

	_, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)
	_, fixtureB := makeCircleBody(t, 1.5, 0.0, 1.0)
	fixtureA.SetFriction(0.9)
	fixtureB.SetFriction(0.4)
	fixtureA.SetRestitution(0.3)

	contact := phys2d.NewContact(fixtureA, 0, fixtureB, 0)

	contact.SetFriction(0.05)
	if contact.GetFriction() != 0.05 {
		t.Error("SetFriction did not stick")
	}
	contact.ResetFriction()
	if got := contact.GetFriction(); math.Abs(got-phys2d.MixFriction(0.9, 0.4)) > 1e-12 {
		t.Errorf("reset friction = %v, want mixed value", got)
	}

	contact.SetRestitution(0.99)
	contact.ResetRestitution()
	if got := contact.GetRestitution(); got != 0.3 {
		t.Errorf("reset restitution = %v, want 0.3", got)
	}
}

func TestContactWorldManifold(t *testing.T) {
	_, fixtureA := makeCircleBody(t, 0.0, 0.0, 1.0)
	_, fixtureB := makeCircleBody(t, 1.5, 0.0, 1.0)

	contact := phys2d.NewContact(fixtureA, 0, fixtureB, 0)
	contact.Update(nil)

	var wm phys2d.WorldManifold
	contact.GetWorldManifold(&wm)

	if wm.Normal.DistanceTo(phys2d.MakeVec2(1.0, 0.0)) > 1e-12 {
		t.Errorf("normal = %v, want (1, 0)", wm.Normal)
	}
	if wm.Separations[0] >= 0.0 {
		t.Errorf("separation = %v, want negative for overlap", wm.Separations[0])
	}
}

func TestGetPointStates(t *testing.T) {
	var id1, id2 phys2d.ContactID
	id1.SetKey(7)
	id2.SetKey(9)

	manifold1 := &phys2d.Manifold{PointCount: 1}
	manifold1.Points[0].ID = id1

	manifold2 := &phys2d.Manifold{PointCount: 2}
	manifold2.Points[0].ID = id1
	manifold2.Points[1].ID = id2

	var state1, state2 [phys2d.MaxManifoldPoints]phys2d.PointState
	phys2d.GetPointStates(&state1, &state2, manifold1, manifold2)

	if state1[0] != phys2d.PersistState {
		t.Errorf("state1[0] = %v, want persist", state1[0])
	}
	if state2[0] != phys2d.PersistState || state2[1] != phys2d.AddState {
		t.Errorf("state2 = %v, want [persist add]", state2)
	}

	phys2d.GetPointStates(&state1, &state2, manifold2, manifold1)
	if state1[1] != phys2d.RemoveState {
		t.Errorf("state1[1] = %v, want remove", state1[1])
	}
}

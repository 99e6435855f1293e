package phys2d

import "math"

// MixFriction is the friction mixing law. Either fixture can drive the
// friction to zero; for example, anything slides on ice.
func MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

// MixRestitution is the restitution mixing law. Anything can bounce off an
// inelastic surface; for example, a superball bounces on anything.
func MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}
	return restitution2
}

// ContactEdge connects bodies and contacts together in a contact graph where
// each body is a node and each contact an edge. It belongs to a doubly
// linked list maintained in each attached body; each contact has two edges,
// one per body. The core exposes the link fields; insertion and removal
// policy belongs to the owning container.
type ContactEdge struct {
	Other   *Body   // quick access to the other attached body
	Contact Contact // the contact
	Prev    *ContactEdge
	Next    *ContactEdge
}

const (
	// Used when crawling the contact graph to form islands.
	contactFlagIsland uint32 = 0x0001

	// Set when the shapes are touching.
	contactFlagTouching uint32 = 0x0002

	// This contact can be disabled by the user.
	contactFlagEnabled uint32 = 0x0004

	// This contact needs filtering because a fixture filter changed.
	contactFlagFilter uint32 = 0x0008

	// This bullet contact had a TOI event.
	contactFlagBulletHit uint32 = 0x0010

	// This contact has a valid TOI in toi.
	contactFlagTOI uint32 = 0x0020
)

// Contact manages the narrow phase between two fixtures. A contact exists
// for each candidate pair (even when filtered or separated), so a contact
// may have no contact points.
type Contact interface {
	GetManifold() *Manifold
	GetWorldManifold(worldManifold *WorldManifold)

	IsTouching() bool

	// SetEnabled is meant to be used inside PreSolve; the flag is reset on
	// every update.
	SetEnabled(flag bool)
	IsEnabled() bool

	GetNext() Contact
	GetPrev() Contact

	FixtureA() *Fixture
	FixtureB() *Fixture

	ChildIndexA() int
	ChildIndexB() int

	GetFriction() float64
	SetFriction(friction float64)
	ResetFriction()

	GetRestitution() float64
	SetRestitution(restitution float64)
	ResetRestitution()

	GetTangentSpeed() float64
	SetTangentSpeed(speed float64)

	FlagForFiltering()

	// Evaluate computes the manifold for the current transforms.
	Evaluate(manifold *Manifold, xfA, xfB Transform)

	// Update refreshes the manifold and touching status and fires listener
	// events. Do not assume the fixture bounds are overlapping or valid.
	Update(listener ContactListener)

	// Internal linkage used by the owning container and solver.
	nodeA() *ContactEdge
	nodeB() *ContactEdge
	setPrev(prev Contact)
	setNext(next Contact)
	getFlags() uint32
	setFlags(flags uint32)
}

// contactBase carries the state common to all contact pair types.
type contactBase struct {
	flags uint32

	// Owning container list pointers.
	prev Contact
	next Contact

	// Nodes for connecting bodies.
	edgeA *ContactEdge
	edgeB *ContactEdge

	fixtureA *Fixture
	fixtureB *Fixture

	indexA int
	indexB int

	manifold *Manifold

	// Bookkeeping for the external continuous-collision pass.
	toiCount int
	toi      float64

	friction     float64
	restitution  float64
	tangentSpeed float64
}

func makeContactBase(fA *Fixture, indexA int, fB *Fixture, indexB int) contactBase {
	return contactBase{
		flags:       contactFlagEnabled,
		fixtureA:    fA,
		fixtureB:    fB,
		indexA:      indexA,
		indexB:      indexB,
		manifold:    &Manifold{},
		edgeA:       &ContactEdge{},
		edgeB:       &ContactEdge{},
		friction:    MixFriction(fA.friction, fB.friction),
		restitution: MixRestitution(fA.restitution, fB.restitution),
	}
}

func (c *contactBase) GetManifold() *Manifold {
	return c.manifold
}

func (c *contactBase) GetWorldManifold(worldManifold *WorldManifold) {
	bodyA := c.fixtureA.GetBody()
	bodyB := c.fixtureB.GetBody()
	shapeA := c.fixtureA.GetShape()
	shapeB := c.fixtureB.GetShape()

	worldManifold.Initialize(c.manifold, bodyA.GetTransform(), shapeA.Radius(), bodyB.GetTransform(), shapeB.Radius())
}

func (c *contactBase) IsTouching() bool {
	return c.flags&contactFlagTouching == contactFlagTouching
}

func (c *contactBase) SetEnabled(flag bool) {
	if flag {
		c.flags |= contactFlagEnabled
	} else {
		c.flags &^= contactFlagEnabled
	}
}

func (c *contactBase) IsEnabled() bool {
	return c.flags&contactFlagEnabled == contactFlagEnabled
}

func (c *contactBase) GetNext() Contact {
	return c.next
}

func (c *contactBase) GetPrev() Contact {
	return c.prev
}

func (c *contactBase) FixtureA() *Fixture {
	return c.fixtureA
}

func (c *contactBase) FixtureB() *Fixture {
	return c.fixtureB
}

func (c *contactBase) ChildIndexA() int {
	return c.indexA
}

func (c *contactBase) ChildIndexB() int {
	return c.indexB
}

func (c *contactBase) GetFriction() float64 {
	return c.friction
}

func (c *contactBase) SetFriction(friction float64) {
	c.friction = friction
}

func (c *contactBase) ResetFriction() {
	c.friction = MixFriction(c.fixtureA.friction, c.fixtureB.friction)
}

func (c *contactBase) GetRestitution() float64 {
	return c.restitution
}

func (c *contactBase) SetRestitution(restitution float64) {
	c.restitution = restitution
}

func (c *contactBase) ResetRestitution() {
	c.restitution = MixRestitution(c.fixtureA.restitution, c.fixtureB.restitution)
}

func (c *contactBase) GetTangentSpeed() float64 {
	return c.tangentSpeed
}

func (c *contactBase) SetTangentSpeed(speed float64) {
	c.tangentSpeed = speed
}

func (c *contactBase) FlagForFiltering() {
	c.flags |= contactFlagFilter
}

func (c *contactBase) nodeA() *ContactEdge {
	return c.edgeA
}

func (c *contactBase) nodeB() *ContactEdge {
	return c.edgeB
}

func (c *contactBase) setPrev(prev Contact) {
	c.prev = prev
}

func (c *contactBase) setNext(next Contact) {
	c.next = next
}

func (c *contactBase) getFlags() uint32 {
	return c.flags
}

func (c *contactBase) setFlags(flags uint32) {
	c.flags = flags
}

// update refreshes the manifold and touching status. Sensor contacts get a
// boolean overlap test and an empty manifold; solid contacts are evaluated
// and the stored impulses are migrated by contact id to warm start the
// solver. Listener events fire exactly on touch transitions; PreSolve fires
// on every touching non-sensor update.
func (c *contactBase) update(self Contact, listener ContactListener) {
	oldManifold := *c.manifold

	// Re-enable this contact.
	c.flags |= contactFlagEnabled

	touching := false
	wasTouching := c.flags&contactFlagTouching == contactFlagTouching

	sensorA := c.fixtureA.IsSensor()
	sensorB := c.fixtureB.IsSensor()
	sensor := sensorA || sensorB

	bodyA := c.fixtureA.GetBody()
	bodyB := c.fixtureB.GetBody()
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	if sensor {
		shapeA := c.fixtureA.GetShape()
		shapeB := c.fixtureB.GetShape()
		touching = ShapesOverlap(shapeA, c.indexA, shapeB, c.indexB, xfA, xfB)

		// Sensors don't generate manifolds.
		c.manifold.PointCount = 0
	} else {
		self.Evaluate(c.manifold, xfA, xfB)
		touching = c.manifold.PointCount > 0

		// Match old contact ids to new contact ids and copy the stored
		// impulses to warm start the solver.
		for i := 0; i < c.manifold.PointCount; i++ {
			mp2 := &c.manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			id2 := mp2.ID

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]

				if mp1.ID.Key() == id2.Key() {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}

		if touching != wasTouching {
			bodyA.SetAwake(true)
			bodyB.SetAwake(true)
		}
	}

	if touching {
		c.flags |= contactFlagTouching
	} else {
		c.flags &^= contactFlagTouching
	}

	if !wasTouching && touching && listener != nil {
		listener.BeginContact(self)
	}

	if wasTouching && !touching && listener != nil {
		listener.EndContact(self)
	}

	if !sensor && touching && listener != nil {
		listener.PreSolve(self, &oldManifold)
	}
}

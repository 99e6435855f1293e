package phys2d

type contactCreateFn func(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact

type contactRegister struct {
	createFn contactCreateFn
	primary  bool
}

var contactRegisters [shapeKindCount][shapeKindCount]contactRegister

func init() {
	addContactType(newCircleContact, KindCircle, KindCircle)
	addContactType(newPolygonAndCircleContact, KindPolygon, KindCircle)
	addContactType(newPolygonContact, KindPolygon, KindPolygon)
	addContactType(newEdgeAndCircleContact, KindEdge, KindCircle)
	addContactType(newEdgeAndPolygonContact, KindEdge, KindPolygon)
	addContactType(newChainAndCircleContact, KindChain, KindCircle)
	addContactType(newChainAndPolygonContact, KindChain, KindPolygon)
}

func addContactType(createFn contactCreateFn, kind1, kind2 ShapeKind) {
	assert(kind1 < shapeKindCount)
	assert(kind2 < shapeKindCount)

	contactRegisters[kind1][kind2].createFn = createFn
	contactRegisters[kind1][kind2].primary = true

	if kind1 != kind2 {
		contactRegisters[kind2][kind1].createFn = createFn
		contactRegisters[kind2][kind1].primary = false
	}
}

// NewContact constructs the contact variant for the given fixture pair,
// swapping arguments so the primary kind comes first. Kind pairs without a
// registered constructor (edge-edge, edge-chain, chain-chain) yield nil and
// no contact is created for them.
func NewContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	kind1 := fixtureA.Kind()
	kind2 := fixtureB.Kind()

	assert(kind1 < shapeKindCount)
	assert(kind2 < shapeKindCount)

	reg := contactRegisters[kind1][kind2]
	if reg.createFn == nil {
		return nil
	}
	if reg.primary {
		return reg.createFn(fixtureA, indexA, fixtureB, indexB)
	}
	return reg.createFn(fixtureB, indexB, fixtureA, indexA)
}

// ContactDestroy unlinks a contact from the lifecycle. Touching solid
// contacts wake both bodies so the separation is noticed.
func ContactDestroy(contact Contact) {
	fixtureA := contact.FixtureA()
	fixtureB := contact.FixtureB()

	if contact.GetManifold().PointCount > 0 && !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		fixtureA.GetBody().SetAwake(true)
		fixtureB.GetBody().SetAwake(true)
	}
}

type circleContact struct {
	contactBase
}

func newCircleContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindCircle)
	assert(fixtureB.Kind() == KindCircle)
	return &circleContact{makeContactBase(fixtureA, 0, fixtureB, 0)}
}

func (c *circleContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	CollideCircles(manifold,
		c.fixtureA.GetShape().(*CircleShape), xfA,
		c.fixtureB.GetShape().(*CircleShape), xfB)
}

func (c *circleContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type polygonAndCircleContact struct {
	contactBase
}

func newPolygonAndCircleContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindPolygon)
	assert(fixtureB.Kind() == KindCircle)
	return &polygonAndCircleContact{makeContactBase(fixtureA, 0, fixtureB, 0)}
}

func (c *polygonAndCircleContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	CollidePolygonAndCircle(manifold,
		c.fixtureA.GetShape().(*PolygonShape), xfA,
		c.fixtureB.GetShape().(*CircleShape), xfB)
}

func (c *polygonAndCircleContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type polygonContact struct {
	contactBase
}

func newPolygonContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindPolygon)
	assert(fixtureB.Kind() == KindPolygon)
	return &polygonContact{makeContactBase(fixtureA, 0, fixtureB, 0)}
}

func (c *polygonContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	CollidePolygons(manifold,
		c.fixtureA.GetShape().(*PolygonShape), xfA,
		c.fixtureB.GetShape().(*PolygonShape), xfB)
}

func (c *polygonContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type edgeAndCircleContact struct {
	contactBase
}

func newEdgeAndCircleContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindEdge)
	assert(fixtureB.Kind() == KindCircle)
	return &edgeAndCircleContact{makeContactBase(fixtureA, 0, fixtureB, 0)}
}

func (c *edgeAndCircleContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	CollideEdgeAndCircle(manifold,
		c.fixtureA.GetShape().(*EdgeShape), xfA,
		c.fixtureB.GetShape().(*CircleShape), xfB)
}

func (c *edgeAndCircleContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type edgeAndPolygonContact struct {
	contactBase
}

func newEdgeAndPolygonContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindEdge)
	assert(fixtureB.Kind() == KindPolygon)
	return &edgeAndPolygonContact{makeContactBase(fixtureA, 0, fixtureB, 0)}
}

func (c *edgeAndPolygonContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	CollideEdgeAndPolygon(manifold,
		c.fixtureA.GetShape().(*EdgeShape), xfA,
		c.fixtureB.GetShape().(*PolygonShape), xfB)
}

func (c *edgeAndPolygonContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type chainAndCircleContact struct {
	contactBase
}

func newChainAndCircleContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindChain)
	assert(fixtureB.Kind() == KindCircle)
	return &chainAndCircleContact{makeContactBase(fixtureA, indexA, fixtureB, indexB)}
}

func (c *chainAndCircleContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	chain := c.fixtureA.GetShape().(*ChainShape)
	edge := MakeEdgeShape()
	chain.GetChildEdge(&edge, c.indexA)
	CollideEdgeAndCircle(manifold,
		&edge, xfA,
		c.fixtureB.GetShape().(*CircleShape), xfB)
}

func (c *chainAndCircleContact) Update(listener ContactListener) {
	c.update(c, listener)
}

type chainAndPolygonContact struct {
	contactBase
}

func newChainAndPolygonContact(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) Contact {
	assert(fixtureA.Kind() == KindChain)
	assert(fixtureB.Kind() == KindPolygon)
	return &chainAndPolygonContact{makeContactBase(fixtureA, indexA, fixtureB, indexB)}
}

func (c *chainAndPolygonContact) Evaluate(manifold *Manifold, xfA, xfB Transform) {
	chain := c.fixtureA.GetShape().(*ChainShape)
	edge := MakeEdgeShape()
	chain.GetChildEdge(&edge, c.indexA)
	CollideEdgeAndPolygon(manifold,
		&edge, xfA,
		c.fixtureB.GetShape().(*PolygonShape), xfB)
}

func (c *chainAndPolygonContact) Update(listener ContactListener) {
	c.update(c, listener)
}

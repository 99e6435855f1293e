package phys2d

// Filter holds contact filtering data.
type Filter struct {
	// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	// The categories this shape accepts for collision.
	MaskBits uint16

	// Collision groups let a set of objects never collide (negative) or
	// always collide (positive). Zero means no group. Non-zero group
	// filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeFilter() Filter {
	return Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

// FixtureDef is used to create a fixture. Definitions may be reused.
type FixtureDef struct {
	// The shape, which must be set. The shape is cloned, so it may live on
	// the stack.
	Shape Shape

	// Application specific fixture data.
	UserData interface{}

	// The friction coefficient, usually in the range [0,1].
	Friction float64

	// The restitution (elasticity), usually in the range [0,1].
	Restitution float64

	// The density, usually in kg/m^2.
	Density float64

	// A sensor collects contact information but never generates a collision
	// response.
	IsSensor bool

	Filter Filter
}

// MakeFixtureDef returns a definition with default values.
func MakeFixtureDef() FixtureDef {
	return FixtureDef{
		Friction: 0.2,
		Filter:   MakeFilter(),
	}
}

// Fixture attaches a shape to a body for collision detection. A fixture
// inherits its transform from its parent and holds the non-geometric data:
// friction, restitution, density, sensor flag and collision filter.
// Fixtures are created via Body.CreateFixture and cannot be reused.
type Fixture struct {
	density float64

	next *Fixture
	body *Body

	shape Shape

	friction    float64
	restitution float64

	filter Filter

	isSensor bool

	userData interface{}
}

func newFixture(body *Body, def *FixtureDef) *Fixture {
	fix := &Fixture{
		userData:    def.UserData,
		friction:    def.Friction,
		restitution: def.Restitution,
		body:        body,
		filter:      def.Filter,
		isSensor:    def.IsSensor,
		shape:       def.Shape.Clone(),
		density:     def.Density,
	}
	return fix
}

func (fix *Fixture) Kind() ShapeKind {
	return fix.shape.Kind()
}

func (fix *Fixture) GetShape() Shape {
	return fix.shape
}

func (fix *Fixture) IsSensor() bool {
	return fix.isSensor
}

// SetSensor wakes the body so the contact lifecycle notices the change on
// the next update.
func (fix *Fixture) SetSensor(sensor bool) {
	if sensor != fix.isSensor {
		fix.body.SetAwake(true)
		fix.isSensor = sensor
	}
}

func (fix *Fixture) GetFilterData() Filter {
	return fix.filter
}

// SetFilterData updates the filter and flags associated contacts for
// re-filtering on the next update.
func (fix *Fixture) SetFilterData(filter Filter) {
	fix.filter = filter
	fix.Refilter()
}

// Refilter flags associated contacts for filtering.
func (fix *Fixture) Refilter() {
	if fix.body == nil {
		return
	}

	for edge := fix.body.GetContactList(); edge != nil; edge = edge.Next {
		contact := edge.Contact
		if contact.FixtureA() == fix || contact.FixtureB() == fix {
			contact.FlagForFiltering()
		}
	}
}

func (fix *Fixture) GetBody() *Body {
	return fix.body
}

func (fix *Fixture) GetNext() *Fixture {
	return fix.next
}

func (fix *Fixture) SetDensity(density float64) {
	assert(IsValidFloat(density) && density >= 0.0)
	fix.density = density
}

func (fix *Fixture) GetDensity() float64 {
	return fix.density
}

func (fix *Fixture) GetFriction() float64 {
	return fix.friction
}

// SetFriction does not change the friction of existing contacts.
func (fix *Fixture) SetFriction(friction float64) {
	fix.friction = friction
}

func (fix *Fixture) GetRestitution() float64 {
	return fix.restitution
}

// SetRestitution does not change the restitution of existing contacts.
func (fix *Fixture) SetRestitution(restitution float64) {
	fix.restitution = restitution
}

func (fix *Fixture) GetUserData() interface{} {
	return fix.userData
}

func (fix *Fixture) SetUserData(data interface{}) {
	fix.userData = data
}

func (fix *Fixture) TestPoint(p Vec2) bool {
	return fix.shape.TestPoint(fix.body.GetTransform(), p)
}

func (fix *Fixture) RayCast(output *RayCastOutput, input RayCastInput, childIndex int) bool {
	return fix.shape.RayCast(output, input, fix.body.GetTransform(), childIndex)
}

func (fix *Fixture) GetMassData(massData *MassData) {
	fix.shape.ComputeMass(massData, fix.density)
}

// ComputeAABB evaluates the world bounds of a child primitive at the body's
// current transform.
func (fix *Fixture) ComputeAABB(aabb *AABB, childIndex int) {
	fix.shape.ComputeAABB(aabb, fix.body.GetTransform(), childIndex)
}

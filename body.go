package phys2d

// BodyType classifies a body for the solver.
//
//	StaticBody:    zero mass, zero velocity, may be manually moved
//	KinematicBody: zero mass, velocity set by the user, moved by the solver
//	DynamicBody:   positive mass, velocity determined by impulses, moved by
//	               the solver
type BodyType uint8

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

// BodyDef holds the data needed to construct a rigid body. Definitions may
// be reused; shapes are added after construction.
type BodyDef struct {
	// The body type. If a dynamic body would have zero mass, the mass is
	// set to one.
	Type BodyType

	// The world position of the body.
	Position Vec2

	// The world angle of the body in radians.
	Angle float64

	// The linear velocity of the body's origin in world coordinates.
	LinearVelocity Vec2

	// The angular velocity of the body.
	AngularVelocity float64

	// Is this body initially awake?
	Awake bool

	// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	// Application specific body data.
	UserData interface{}
}

// MakeBodyDef returns a definition with default values.
func MakeBodyDef() BodyDef {
	return BodyDef{
		Type:  StaticBody,
		Awake: true,
	}
}

const (
	bodyFlagIsland        uint32 = 0x0001
	bodyFlagAwake         uint32 = 0x0002
	bodyFlagFixedRotation uint32 = 0x0004
)

// Body is a rigid body participating in contact and joint constraints. It
// carries mass properties, the origin transform, the swept motion state, and
// the heads of the fixture, joint edge and contact edge lists. Ownership of
// body storage and stepping policy belongs to the caller.
type Body struct {
	bodyType BodyType

	flags uint32

	// Index into the solver's position/velocity buffers.
	islandIndex int

	xf    Transform // the body origin transform
	sweep Sweep     // the swept motion state

	linearVelocity  Vec2
	angularVelocity float64

	fixtureList  *Fixture
	fixtureCount int

	jointList   *JointEdge
	contactList *ContactEdge

	mass, invMass float64

	// Rotational inertia about the center of mass.
	inertia, invI float64

	userData interface{}
}

// NewBody constructs a body from a definition.
func NewBody(bd *BodyDef) *Body {
	assert(bd.Position.IsValid())
	assert(bd.LinearVelocity.IsValid())
	assert(IsValidFloat(bd.Angle))
	assert(IsValidFloat(bd.AngularVelocity))

	body := &Body{}

	if bd.FixedRotation {
		body.flags |= bodyFlagFixedRotation
	}
	if bd.Awake {
		body.flags |= bodyFlagAwake
	}

	body.xf.P = bd.Position
	body.xf.Q.Set(bd.Angle)

	body.sweep.LocalCenter.SetZero()
	body.sweep.C0 = body.xf.P
	body.sweep.C = body.xf.P
	body.sweep.A0 = bd.Angle
	body.sweep.A = bd.Angle
	body.sweep.Alpha0 = 0.0

	body.linearVelocity = bd.LinearVelocity
	body.angularVelocity = bd.AngularVelocity

	body.bodyType = bd.Type
	if body.bodyType == DynamicBody {
		body.mass = 1.0
		body.invMass = 1.0
	}

	body.userData = bd.UserData

	return body
}

func (body *Body) Type() BodyType {
	return body.bodyType
}

func (body *Body) GetTransform() Transform {
	return body.xf
}

func (body *Body) GetPosition() Vec2 {
	return body.xf.P
}

func (body *Body) GetAngle() float64 {
	return body.sweep.A
}

func (body *Body) GetWorldCenter() Vec2 {
	return body.sweep.C
}

func (body *Body) GetLocalCenter() Vec2 {
	return body.sweep.LocalCenter
}

func (body *Body) SetLinearVelocity(v Vec2) {
	if body.bodyType == StaticBody {
		return
	}
	if v.Dot(v) > 0.0 {
		body.SetAwake(true)
	}
	body.linearVelocity = v
}

func (body *Body) GetLinearVelocity() Vec2 {
	return body.linearVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	if body.bodyType == StaticBody {
		return
	}
	if w*w > 0.0 {
		body.SetAwake(true)
	}
	body.angularVelocity = w
}

func (body *Body) GetAngularVelocity() float64 {
	return body.angularVelocity
}

func (body *Body) GetMass() float64 {
	return body.mass
}

// GetInertia returns the rotational inertia about the body origin.
func (body *Body) GetInertia() float64 {
	return body.inertia + body.mass*body.sweep.LocalCenter.Dot(body.sweep.LocalCenter)
}

func (body *Body) GetMassData(data *MassData) {
	data.Mass = body.mass
	data.I = body.inertia + body.mass*body.sweep.LocalCenter.Dot(body.sweep.LocalCenter)
	data.Center = body.sweep.LocalCenter
}

func (body *Body) GetWorldPoint(localPoint Vec2) Vec2 {
	return body.xf.Apply(localPoint)
}

func (body *Body) GetWorldVector(localVector Vec2) Vec2 {
	return body.xf.Q.Apply(localVector)
}

func (body *Body) GetLocalPoint(worldPoint Vec2) Vec2 {
	return body.xf.ApplyT(worldPoint)
}

func (body *Body) GetLocalVector(worldVector Vec2) Vec2 {
	return body.xf.Q.ApplyT(worldVector)
}

func (body *Body) GetLinearVelocityFromWorldPoint(worldPoint Vec2) Vec2 {
	return body.linearVelocity.Add(CrossSV(body.angularVelocity, worldPoint.Sub(body.sweep.C)))
}

func (body *Body) GetLinearVelocityFromLocalPoint(localPoint Vec2) Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

// SetAwake wakes or puts the body to sleep. Sleeping clears the velocities.
func (body *Body) SetAwake(flag bool) {
	if flag {
		body.flags |= bodyFlagAwake
	} else {
		body.flags &^= bodyFlagAwake
		body.linearVelocity.SetZero()
		body.angularVelocity = 0.0
	}
}

func (body *Body) IsAwake() bool {
	return body.flags&bodyFlagAwake == bodyFlagAwake
}

func (body *Body) IsFixedRotation() bool {
	return body.flags&bodyFlagFixedRotation == bodyFlagFixedRotation
}

func (body *Body) SetFixedRotation(flag bool) {
	status := body.flags&bodyFlagFixedRotation == bodyFlagFixedRotation
	if status == flag {
		return
	}

	if flag {
		body.flags |= bodyFlagFixedRotation
	} else {
		body.flags &^= bodyFlagFixedRotation
	}

	body.angularVelocity = 0.0
	body.ResetMassData()
}

func (body *Body) GetFixtureList() *Fixture {
	return body.fixtureList
}

func (body *Body) GetJointList() *JointEdge {
	return body.jointList
}

func (body *Body) GetContactList() *ContactEdge {
	return body.contactList
}

func (body *Body) SetUserData(data interface{}) {
	body.userData = data
}

func (body *Body) GetUserData() interface{} {
	return body.userData
}

// CreateFixtureFromDef attaches a fixture built from a definition. The shape
// is cloned. Adjusts the mass properties when the fixture has density.
func (body *Body) CreateFixtureFromDef(def *FixtureDef) *Fixture {
	fixture := newFixture(body, def)

	fixture.next = body.fixtureList
	body.fixtureList = fixture
	body.fixtureCount++

	if fixture.density > 0.0 {
		body.ResetMassData()
	}

	return fixture
}

// CreateFixture attaches a shape with the given density and default
// friction and restitution.
func (body *Body) CreateFixture(shape Shape, density float64) *Fixture {
	def := MakeFixtureDef()
	def.Shape = shape
	def.Density = density
	return body.CreateFixtureFromDef(&def)
}

// DestroyFixture removes a fixture from the body's list and resets the mass
// data. Contacts referencing the fixture are the caller's responsibility.
func (body *Body) DestroyFixture(fixture *Fixture) {
	if fixture == nil {
		return
	}

	assert(fixture.body == body)
	assert(body.fixtureCount > 0)

	node := &body.fixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.next
			found = true
			break
		}
		node = &(*node).next
	}

	// You tried to remove a fixture that is not attached to this body.
	assert(found)

	fixture.body = nil
	fixture.next = nil
	body.fixtureCount--

	body.ResetMassData()
}

// ResetMassData recomputes mass, center of mass and inertia from the
// fixtures. Static and kinematic bodies get zero mass.
func (body *Body) ResetMassData() {
	body.mass = 0.0
	body.invMass = 0.0
	body.inertia = 0.0
	body.invI = 0.0
	body.sweep.LocalCenter.SetZero()

	if body.bodyType == StaticBody || body.bodyType == KinematicBody {
		body.sweep.C0 = body.xf.P
		body.sweep.C = body.xf.P
		body.sweep.A0 = body.sweep.A
		return
	}

	assert(body.bodyType == DynamicBody)

	// Accumulate mass over all fixtures.
	var localCenter Vec2
	for f := body.fixtureList; f != nil; f = f.next {
		if f.density == 0.0 {
			continue
		}

		var massData MassData
		f.GetMassData(&massData)
		body.mass += massData.Mass
		localCenter = localCenter.Add(massData.Center.Scale(massData.Mass))
		body.inertia += massData.I
	}

	if body.mass > 0.0 {
		body.invMass = 1.0 / body.mass
		localCenter = localCenter.Scale(body.invMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.mass = 1.0
		body.invMass = 1.0
	}

	if body.inertia > 0.0 && body.flags&bodyFlagFixedRotation == 0 {
		// Center the inertia about the center of mass.
		body.inertia -= body.mass * localCenter.Dot(localCenter)
		assert(body.inertia > 0.0)
		body.invI = 1.0 / body.inertia
	} else {
		body.inertia = 0.0
		body.invI = 0.0
	}

	// Move the center of mass.
	oldCenter := body.sweep.C
	body.sweep.LocalCenter = localCenter
	body.sweep.C0 = body.xf.Apply(body.sweep.LocalCenter)
	body.sweep.C = body.sweep.C0

	// Update the center of mass velocity.
	body.linearVelocity = body.linearVelocity.Add(
		CrossSV(body.angularVelocity, body.sweep.C.Sub(oldCenter)))
}

// SetMassData overrides the mass properties computed from the fixtures.
func (body *Body) SetMassData(massData *MassData) {
	if body.bodyType != DynamicBody {
		return
	}

	body.invMass = 0.0
	body.inertia = 0.0
	body.invI = 0.0

	body.mass = massData.Mass
	if body.mass <= 0.0 {
		body.mass = 1.0
	}
	body.invMass = 1.0 / body.mass

	if massData.I > 0.0 && body.flags&bodyFlagFixedRotation == 0 {
		body.inertia = massData.I - body.mass*massData.Center.Dot(massData.Center)
		assert(body.inertia > 0.0)
		body.invI = 1.0 / body.inertia
	}

	// Move the center of mass.
	oldCenter := body.sweep.C
	body.sweep.LocalCenter = massData.Center
	body.sweep.C0 = body.xf.Apply(body.sweep.LocalCenter)
	body.sweep.C = body.sweep.C0

	// Update the center of mass velocity.
	body.linearVelocity = body.linearVelocity.Add(
		CrossSV(body.angularVelocity, body.sweep.C.Sub(oldCenter)))
}

// ApplyLinearImpulse applies an impulse at a world point, affecting both the
// linear and angular velocity.
func (body *Body) ApplyLinearImpulse(impulse Vec2, point Vec2, wake bool) {
	if body.bodyType != DynamicBody {
		return
	}

	if wake && body.flags&bodyFlagAwake == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping.
	if body.flags&bodyFlagAwake != 0 {
		body.linearVelocity = body.linearVelocity.Add(impulse.Scale(body.invMass))
		body.angularVelocity += body.invI * point.Sub(body.sweep.C).Cross(impulse)
	}
}

func (body *Body) ApplyAngularImpulse(impulse float64, wake bool) {
	if body.bodyType != DynamicBody {
		return
	}

	if wake && body.flags&bodyFlagAwake == 0 {
		body.SetAwake(true)
	}

	if body.flags&bodyFlagAwake != 0 {
		body.angularVelocity += body.invI * impulse
	}
}

// SetTransform moves the body origin and rotation, keeping the velocities.
func (body *Body) SetTransform(position Vec2, angle float64) {
	body.xf.Q.Set(angle)
	body.xf.P = position

	body.sweep.C = body.xf.Apply(body.sweep.LocalCenter)
	body.sweep.A = angle

	body.sweep.C0 = body.sweep.C
	body.sweep.A0 = angle
}

// SynchronizeTransform derives the origin transform from the sweep state
// after the solver has updated C and A.
func (body *Body) SynchronizeTransform() {
	body.xf.Q.Set(body.sweep.A)
	body.xf.P = body.sweep.C.Sub(body.xf.Q.Apply(body.sweep.LocalCenter))
}

// Advance moves the sweep to the new safe time.
func (body *Body) Advance(alpha float64) {
	body.sweep.Advance(alpha)
	body.sweep.C = body.sweep.C0
	body.sweep.A = body.sweep.A0
	body.xf.Q.Set(body.sweep.A)
	body.xf.P = body.sweep.C.Sub(body.xf.Q.Apply(body.sweep.LocalCenter))
}

// ShouldCollide reports whether contacts may form between two bodies. At
// least one body must be dynamic, and no connecting joint may forbid it.
func (body *Body) ShouldCollide(other *Body) bool {
	if body.bodyType != DynamicBody && other.bodyType != DynamicBody {
		return false
	}

	for jn := body.jointList; jn != nil; jn = jn.Next {
		if jn.Other == other {
			if !jn.Joint.CollideConnected() {
				return false
			}
		}
	}

	return true
}

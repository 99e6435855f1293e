package phys2d

import (
	"math"
	"testing"
)

// jointDriver steps a single joint the way the island solver would: gather
// body state into the solver buffers, solve velocities, integrate, solve
// positions, and scatter the result back.
type jointDriver struct {
	bodies     []*Body
	gravity    Vec2
	step       TimeStep
	positions  []Position
	velocities []Velocity
}

func newJointDriver(gravity Vec2, bodies ...*Body) *jointDriver {
	for i, b := range bodies {
		b.islandIndex = i
	}
	return &jointDriver{
		bodies: bodies,
		gravity: gravity,
		step: TimeStep{
			Dt:                 1.0 / 60.0,
			InvDt:              60.0,
			DtRatio:            1.0,
			VelocityIterations: 8,
			PositionIterations: 3,
			WarmStarting:       true,
		},
		positions:  make([]Position, len(bodies)),
		velocities: make([]Velocity, len(bodies)),
	}
}

func (d *jointDriver) advance(joint Joint) {
	h := d.step.Dt

	for i, b := range d.bodies {
		d.positions[i] = Position{C: b.sweep.C, A: b.sweep.A}
		v := b.linearVelocity
		if b.invMass > 0.0 {
			v = v.Add(d.gravity.Scale(h))
		}
		d.velocities[i] = Velocity{V: v, W: b.angularVelocity}
	}

	data := SolverData{Step: d.step, Positions: d.positions, Velocities: d.velocities}

	joint.InitVelocityConstraints(data)
	for i := 0; i < d.step.VelocityIterations; i++ {
		joint.SolveVelocityConstraints(data)
	}

	for i := range d.bodies {
		d.positions[i].C = d.positions[i].C.Add(d.velocities[i].V.Scale(h))
		d.positions[i].A += h * d.velocities[i].W
	}

	for i := 0; i < d.step.PositionIterations; i++ {
		if joint.SolvePositionConstraints(data) {
			break
		}
	}

	for i, b := range d.bodies {
		b.sweep.C = d.positions[i].C
		b.sweep.A = d.positions[i].A
		b.linearVelocity = d.velocities[i].V
		b.angularVelocity = d.velocities[i].W
		b.SynchronizeTransform()
	}
}

func makeStaticBody(x, y float64) *Body {
	bd := MakeBodyDef()
	bd.Position = MakeVec2(x, y)
	return NewBody(&bd)
}

func makeDynamicDisc(x, y, radius, density float64) *Body {
	bd := MakeBodyDef()
	bd.Type = DynamicBody
	bd.Position = MakeVec2(x, y)
	body := NewBody(&bd)
	body.CreateFixture(NewCircleShape(MakeVec2(0.0, 0.0), radius), density)
	return body
}

func TestRevoluteDefInitialize(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	disc := makeDynamicDisc(2.0, 1.0, 0.5, 1.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, disc, MakeVec2(2.0, 1.0))

	if def.BodyA != ground || def.BodyB != disc {
		t.Fatal("Initialize did not bind the bodies")
	}
	if def.LocalAnchorA.DistanceTo(MakeVec2(2.0, 1.0)) > 1e-12 {
		t.Errorf("localAnchorA = %v, want (2, 1)", def.LocalAnchorA)
	}
	if def.LocalAnchorB.DistanceTo(MakeVec2(0.0, 0.0)) > 1e-12 {
		t.Errorf("localAnchorB = %v, want (0, 0)", def.LocalAnchorB)
	}
	if def.ReferenceAngle != 0.0 {
		t.Errorf("referenceAngle = %v, want 0", def.ReferenceAngle)
	}
}

func TestRevoluteMotorReachesSpeed(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 0.5, 5.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	def.EnableMotor = true
	def.MotorSpeed = 2.0
	def.MaxMotorTorque = 1000.0
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, 0.0), ground, wheel)
	for i := 0; i < 60; i++ {
		driver.advance(joint)
	}

	if got := joint.GetJointSpeed(); math.Abs(got-2.0) > 1e-6 {
		t.Errorf("joint speed = %v, want 2", got)
	}
	if torque := math.Abs(joint.GetMotorTorque(driver.step.InvDt)); torque > def.MaxMotorTorque {
		t.Errorf("motor torque %v exceeds max %v", torque, def.MaxMotorTorque)
	}
}

func TestRevoluteMotorTorqueClamp(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 2.0, 10.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	def.EnableMotor = true
	def.MotorSpeed = 100.0
	def.MaxMotorTorque = 0.5
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, 0.0), ground, wheel)
	for i := 0; i < 30; i++ {
		driver.advance(joint)

		if torque := math.Abs(joint.GetMotorTorque(driver.step.InvDt)); torque > def.MaxMotorTorque+1e-12 {
			t.Fatalf("step %d: motor torque %v exceeds max %v", i, torque, def.MaxMotorTorque)
		}
	}

	// A weak motor on a heavy wheel cannot reach the target speed.
	if got := joint.GetJointSpeed(); got >= def.MotorSpeed {
		t.Errorf("joint speed = %v, expected well below %v", got, def.MotorSpeed)
	}
}

func TestRevoluteEqualLimits(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 0.5, 1.0)
	wheel.SetAngularVelocity(10.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	def.EnableLimit = true
	def.LowerAngle = 0.0
	def.UpperAngle = 0.0
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, 0.0), ground, wheel)
	for i := 0; i < 30; i++ {
		driver.advance(joint)
	}

	if joint.GetLimitState() != LimitEqual {
		t.Errorf("limit state = %v, want %v", joint.GetLimitState(), LimitEqual)
	}
	if got := math.Abs(joint.GetJointAngle()); got > 0.05 {
		t.Errorf("joint angle = %v, want held near 0", got)
	}
	if got := math.Abs(joint.GetJointSpeed()); got > 1e-6 {
		t.Errorf("joint speed = %v, want 0 under equal limits", got)
	}
}

func TestRevoluteUpperLimitStops(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 0.5, 1.0)
	wheel.SetAngularVelocity(4.0)

	upper := 0.25
	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	def.EnableLimit = true
	def.LowerAngle = -0.25
	def.UpperAngle = upper
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, 0.0), ground, wheel)
	for i := 0; i < 60; i++ {
		driver.advance(joint)
	}

	angle := joint.GetJointAngle()
	if angle > upper+2.0*AngularSlop {
		t.Errorf("joint angle = %v, exceeds upper limit %v", angle, upper)
	}
	if angle < upper-0.05 {
		t.Errorf("joint angle = %v, expected to rest at the upper limit %v", angle, upper)
	}
}

func TestRevolutePendulumHoldsAnchor(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	bob := makeDynamicDisc(2.0, 0.0, 0.25, 5.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, bob, MakeVec2(0.0, 0.0))
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, -10.0), ground, bob)
	for i := 0; i < 120; i++ {
		driver.advance(joint)

		err := joint.GetAnchorB().DistanceTo(joint.GetAnchorA())
		if err > 0.05 {
			t.Fatalf("step %d: anchor error = %v", i, err)
		}
	}

	// The bob must stay on the joint circle.
	if r := bob.GetWorldCenter().Length(); math.Abs(r-2.0) > 0.05 {
		t.Errorf("bob radius = %v, want 2", r)
	}
}

func TestRevoluteHangingReaction(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	bob := makeDynamicDisc(0.0, -2.0, 0.25, 5.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, bob, MakeVec2(0.0, 0.0))
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, -10.0), ground, bob)
	for i := 0; i < 120; i++ {
		driver.advance(joint)
	}

	// Hanging at rest, the reaction force carries the bob's weight.
	weight := bob.GetMass() * 10.0
	force := joint.GetReactionForce(driver.step.InvDt)
	if math.Abs(force.Y-weight) > 0.05*weight {
		t.Errorf("reaction force = %v, want Y near %v", force, weight)
	}
}

func TestRevoluteMomentumConservation(t *testing.T) {
	discA := makeDynamicDisc(-1.0, 0.0, 0.5, 2.0)
	discB := makeDynamicDisc(1.0, 0.0, 0.5, 2.0)
	discA.SetLinearVelocity(MakeVec2(0.0, 3.0))

	def := MakeRevoluteJointDef()
	def.Initialize(discA, discB, MakeVec2(0.0, 0.0))
	joint := NewRevoluteJoint(&def)

	momentum := func() Vec2 {
		pA := discA.GetLinearVelocity().Scale(discA.GetMass())
		pB := discB.GetLinearVelocity().Scale(discB.GetMass())
		return pA.Add(pB)
	}

	before := momentum()
	driver := newJointDriver(MakeVec2(0.0, 0.0), discA, discB)
	for i := 0; i < 60; i++ {
		driver.advance(joint)
	}
	after := momentum()

	if before.DistanceTo(after) > 1e-9 {
		t.Errorf("momentum drifted: %v -> %v", before, after)
	}
}

func TestRevoluteAccessorsWake(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 0.5, 1.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	joint := NewRevoluteJoint(&def)

	cases := []struct {
		name string
		call func()
	}{
		{"EnableMotor", func() { joint.EnableMotor(true) }},
		{"SetMotorSpeed", func() { joint.SetMotorSpeed(3.0) }},
		{"SetMaxMotorTorque", func() { joint.SetMaxMotorTorque(7.0) }},
		{"EnableLimit", func() { joint.EnableLimit(true) }},
		{"SetLimits", func() { joint.SetLimits(-1.0, 1.0) }},
	}

	for _, tc := range cases {
		ground.SetAwake(false)
		wheel.SetAwake(false)
		tc.call()
		if !ground.IsAwake() || !wheel.IsAwake() {
			t.Errorf("%s did not wake the bodies", tc.name)
		}
	}

	if !joint.IsMotorEnabled() || joint.GetMotorSpeed() != 3.0 || joint.GetMaxMotorTorque() != 7.0 {
		t.Error("motor accessors out of sync")
	}
	if !joint.IsLimitEnabled() || joint.GetLowerLimit() != -1.0 || joint.GetUpperLimit() != 1.0 {
		t.Error("limit accessors out of sync")
	}
}

func TestRevoluteTypeAndUserData(t *testing.T) {
	ground := makeStaticBody(0.0, 0.0)
	wheel := makeDynamicDisc(0.0, 0.0, 0.5, 1.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, wheel, MakeVec2(0.0, 0.0))
	def.UserData = "hinge"
	joint := NewRevoluteJoint(&def)

	if joint.Type() != JointTypeRevolute {
		t.Errorf("type = %v, want revolute", joint.Type())
	}
	if joint.GetBodyA() != ground || joint.GetBodyB() != wheel {
		t.Error("bodies out of sync")
	}
	if joint.GetUserData() != "hinge" {
		t.Error("user data lost")
	}
}

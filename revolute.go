package phys2d

import (
	"fmt"
	"math"
)

// RevoluteJointDef defines a revolute joint. It requires an anchor point
// where the bodies are joined, expressed in each body's local frame so that
// the initial configuration can slightly violate the constraint. The
// reference angle pins the joint angle used by limits.
// Local anchors are measured from the body origin rather than the center of
// mass because the center of mass moves when shapes are added or removed.
type RevoluteJointDef struct {
	JointDef

	// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	// A flag to enable joint limits.
	EnableLimit bool

	// The lower angle for the joint limit (radians).
	LowerAngle float64

	// The upper angle for the joint limit (radians).
	UpperAngle float64

	// A flag to enable the joint motor.
	EnableMotor bool

	// The desired motor speed, usually in radians per second.
	MotorSpeed float64

	// The maximum motor torque used to achieve the desired motor speed,
	// usually in N-m.
	MaxMotorTorque float64
}

func MakeRevoluteJointDef() RevoluteJointDef {
	def := RevoluteJointDef{}
	def.Type = JointTypeRevolute
	return def
}

// Initialize sets the bodies, local anchors, and reference angle from a
// world anchor point.
func (def *RevoluteJointDef) Initialize(bodyA, bodyB *Body, anchor Vec2) {
	def.BodyA = bodyA
	def.BodyB = bodyB
	def.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	def.ReferenceAngle = bodyB.GetAngle() - bodyA.GetAngle()
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Motor constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

// RevoluteJoint constrains two bodies to share a common point while they are
// free to rotate about the point. The relative rotation about the shared
// point is the joint angle. The relative rotation can be bounded with a
// lower and upper limit, and driven with a motor capped at a maximum torque.
type RevoluteJoint struct {
	jointBase

	// Solver shared
	localAnchorA Vec2
	localAnchorB Vec2
	impulse      Vec3
	motorImpulse float64

	enableMotor    bool
	maxMotorTorque float64
	motorSpeed     float64

	enableLimit    bool
	referenceAngle float64
	lowerAngle     float64
	upperAngle     float64

	// Solver temp
	indexA       int
	indexB       int
	rA           Vec2
	rB           Vec2
	localCenterA Vec2
	localCenterB Vec2
	invMassA     float64
	invMassB     float64
	invIA        float64
	invIB        float64
	mass         Mat33 // effective mass for point-to-point constraint
	motorMass    float64
	limitState   LimitState
}

func NewRevoluteJoint(def *RevoluteJointDef) *RevoluteJoint {
	return &RevoluteJoint{
		jointBase: makeJointBase(&def.JointDef),

		localAnchorA:   def.LocalAnchorA,
		localAnchorB:   def.LocalAnchorB,
		referenceAngle: def.ReferenceAngle,

		lowerAngle:     def.LowerAngle,
		upperAngle:     def.UpperAngle,
		maxMotorTorque: def.MaxMotorTorque,
		motorSpeed:     def.MotorSpeed,
		enableLimit:    def.EnableLimit,
		enableMotor:    def.EnableMotor,
		limitState:     LimitInactive,
	}
}

func (j *RevoluteJoint) InitVelocityConstraints(data SolverData) {
	j.indexA = j.bodyA.islandIndex
	j.indexB = j.bodyB.islandIndex
	j.localCenterA = j.bodyA.sweep.LocalCenter
	j.localCenterB = j.bodyB.sweep.LocalCenter
	j.invMassA = j.bodyA.invMass
	j.invMassB = j.bodyB.invMass
	j.invIA = j.bodyA.invI
	j.invIB = j.bodyB.invI

	aA := data.Positions[j.indexA].A
	vA := data.Velocities[j.indexA].V
	wA := data.Velocities[j.indexA].W

	aB := data.Positions[j.indexB].A
	vB := data.Velocities[j.indexB].V
	wB := data.Velocities[j.indexB].W

	qA := MakeRot(aA)
	qB := MakeRot(aB)

	j.rA = qA.Apply(j.localAnchorA.Sub(j.localCenterA))
	j.rB = qB.Apply(j.localAnchorB.Sub(j.localCenterB))

	// J = [-I -r1_skew I r2_skew]
	//     [ 0       -1 0       1]
	// r_skew = [-ry; rx]

	// K = [ mA+r1y^2*iA+mB+r2y^2*iB,  -r1y*iA*r1x-r2y*iB*r2x,          -r1y*iA-r2y*iB]
	//     [  -r1y*iA*r1x-r2y*iB*r2x, mA+r1x^2*iA+mB+r2x^2*iB,           r1x*iA+r2x*iB]
	//     [          -r1y*iA-r2y*iB,           r1x*iA+r2x*iB,                   iA+iB]

	mA := j.invMassA
	mB := j.invMassB
	iA := j.invIA
	iB := j.invIB

	fixedRotation := iA+iB == 0.0

	j.mass.Ex.X = mA + mB + j.rA.Y*j.rA.Y*iA + j.rB.Y*j.rB.Y*iB
	j.mass.Ey.X = -j.rA.Y*j.rA.X*iA - j.rB.Y*j.rB.X*iB
	j.mass.Ez.X = -j.rA.Y*iA - j.rB.Y*iB
	j.mass.Ex.Y = j.mass.Ey.X
	j.mass.Ey.Y = mA + mB + j.rA.X*j.rA.X*iA + j.rB.X*j.rB.X*iB
	j.mass.Ez.Y = j.rA.X*iA + j.rB.X*iB
	j.mass.Ex.Z = j.mass.Ez.X
	j.mass.Ey.Z = j.mass.Ez.Y
	j.mass.Ez.Z = iA + iB

	j.motorMass = iA + iB
	if j.motorMass > 0.0 {
		j.motorMass = 1.0 / j.motorMass
	}

	if !j.enableMotor || fixedRotation {
		j.motorImpulse = 0.0
	}

	if j.enableLimit && !fixedRotation {
		jointAngle := aB - aA - j.referenceAngle
		if math.Abs(j.upperAngle-j.lowerAngle) < 2.0*AngularSlop {
			j.limitState = LimitEqual
		} else if jointAngle <= j.lowerAngle {
			if j.limitState != LimitAtLower {
				j.impulse.Z = 0.0
			}
			j.limitState = LimitAtLower
		} else if jointAngle >= j.upperAngle {
			if j.limitState != LimitAtUpper {
				j.impulse.Z = 0.0
			}
			j.limitState = LimitAtUpper
		} else {
			j.limitState = LimitInactive
			j.impulse.Z = 0.0
		}
	} else {
		j.limitState = LimitInactive
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		j.impulse = j.impulse.Scale(data.Step.DtRatio)
		j.motorImpulse *= data.Step.DtRatio

		P := MakeVec2(j.impulse.X, j.impulse.Y)

		vA = vA.Sub(P.Scale(mA))
		wA -= iA * (j.rA.Cross(P) + j.motorImpulse + j.impulse.Z)

		vB = vB.Add(P.Scale(mB))
		wB += iB * (j.rB.Cross(P) + j.motorImpulse + j.impulse.Z)
	} else {
		j.impulse.SetZero()
		j.motorImpulse = 0.0
	}

	data.Velocities[j.indexA].V = vA
	data.Velocities[j.indexA].W = wA
	data.Velocities[j.indexB].V = vB
	data.Velocities[j.indexB].W = wB
}

func (j *RevoluteJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[j.indexA].V
	wA := data.Velocities[j.indexA].W
	vB := data.Velocities[j.indexB].V
	wB := data.Velocities[j.indexB].W

	mA := j.invMassA
	mB := j.invMassB
	iA := j.invIA
	iB := j.invIB

	fixedRotation := iA+iB == 0.0

	// Solve motor constraint.
	if j.enableMotor && j.limitState != LimitEqual && !fixedRotation {
		Cdot := wB - wA - j.motorSpeed
		impulse := -j.motorMass * Cdot
		oldImpulse := j.motorImpulse
		maxImpulse := data.Step.Dt * j.maxMotorTorque
		j.motorImpulse = clamp(j.motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = j.motorImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse
	}

	// Solve limit constraint.
	if j.enableLimit && j.limitState != LimitInactive && !fixedRotation {
		Cdot1 := vB.Add(CrossSV(wB, j.rB)).Sub(vA).Sub(CrossSV(wA, j.rA))
		Cdot2 := wB - wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := j.mass.Solve33(Cdot).Neg()

		switch j.limitState {
		case LimitEqual:
			j.impulse = j.impulse.Add(impulse)
		case LimitAtLower:
			newImpulse := j.impulse.Z + impulse.Z
			if newImpulse < 0.0 {
				rhs := Cdot1.Neg().Add(MakeVec2(j.mass.Ez.X, j.mass.Ez.Y).Scale(j.impulse.Z))
				reduced := j.mass.Solve22(rhs)
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -j.impulse.Z
				j.impulse.X += reduced.X
				j.impulse.Y += reduced.Y
				j.impulse.Z = 0.0
			} else {
				j.impulse = j.impulse.Add(impulse)
			}
		case LimitAtUpper:
			newImpulse := j.impulse.Z + impulse.Z
			if newImpulse > 0.0 {
				rhs := Cdot1.Neg().Add(MakeVec2(j.mass.Ez.X, j.mass.Ez.Y).Scale(j.impulse.Z))
				reduced := j.mass.Solve22(rhs)
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -j.impulse.Z
				j.impulse.X += reduced.X
				j.impulse.Y += reduced.Y
				j.impulse.Z = 0.0
			} else {
				j.impulse = j.impulse.Add(impulse)
			}
		}

		P := MakeVec2(impulse.X, impulse.Y)

		vA = vA.Sub(P.Scale(mA))
		wA -= iA * (j.rA.Cross(P) + impulse.Z)

		vB = vB.Add(P.Scale(mB))
		wB += iB * (j.rB.Cross(P) + impulse.Z)
	} else {
		// Solve point-to-point constraint.
		Cdot := vB.Add(CrossSV(wB, j.rB)).Sub(vA).Sub(CrossSV(wA, j.rA))
		impulse := j.mass.Solve22(Cdot.Neg())

		j.impulse.X += impulse.X
		j.impulse.Y += impulse.Y

		vA = vA.Sub(impulse.Scale(mA))
		wA -= iA * j.rA.Cross(impulse)

		vB = vB.Add(impulse.Scale(mB))
		wB += iB * j.rB.Cross(impulse)
	}

	data.Velocities[j.indexA].V = vA
	data.Velocities[j.indexA].W = wA
	data.Velocities[j.indexB].V = vB
	data.Velocities[j.indexB].W = wB
}

func (j *RevoluteJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[j.indexA].C
	aA := data.Positions[j.indexA].A
	cB := data.Positions[j.indexB].C
	aB := data.Positions[j.indexB].A

	angularError := 0.0
	positionError := 0.0

	fixedRotation := j.invIA+j.invIB == 0.0

	// Solve angular limit constraint.
	if j.enableLimit && j.limitState != LimitInactive && !fixedRotation {
		angle := aB - aA - j.referenceAngle
		limitImpulse := 0.0

		switch j.limitState {
		case LimitEqual:
			// Prevent large angular corrections.
			C := clamp(angle-j.lowerAngle, -MaxAngularCorrection, MaxAngularCorrection)
			limitImpulse = -j.motorMass * C
			angularError = math.Abs(C)
		case LimitAtLower:
			C := angle - j.lowerAngle
			angularError = -C

			// Prevent large angular corrections and allow some slop.
			C = clamp(C+AngularSlop, -MaxAngularCorrection, 0.0)
			limitImpulse = -j.motorMass * C
		case LimitAtUpper:
			C := angle - j.upperAngle
			angularError = C

			// Prevent large angular corrections and allow some slop.
			C = clamp(C-AngularSlop, 0.0, MaxAngularCorrection)
			limitImpulse = -j.motorMass * C
		}

		aA -= j.invIA * limitImpulse
		aB += j.invIB * limitImpulse
	}

	// Solve point-to-point constraint.
	{
		qA := MakeRot(aA)
		qB := MakeRot(aB)
		rA := qA.Apply(j.localAnchorA.Sub(j.localCenterA))
		rB := qB.Apply(j.localAnchorB.Sub(j.localCenterB))

		C := cB.Add(rB).Sub(cA).Sub(rA)
		positionError = C.Length()

		mA := j.invMassA
		mB := j.invMassB
		iA := j.invIA
		iB := j.invIB

		var K Mat22
		K.Ex.X = mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
		K.Ex.Y = -iA*rA.X*rA.Y - iB*rB.X*rB.Y
		K.Ey.X = K.Ex.Y
		K.Ey.Y = mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X

		impulse := K.Solve(C).Neg()

		cA = cA.Sub(impulse.Scale(mA))
		aA -= iA * rA.Cross(impulse)

		cB = cB.Add(impulse.Scale(mB))
		aB += iB * rB.Cross(impulse)
	}

	data.Positions[j.indexA].C = cA
	data.Positions[j.indexA].A = aA
	data.Positions[j.indexB].C = cB
	data.Positions[j.indexB].A = aB

	return positionError <= LinearSlop && angularError <= AngularSlop
}

// GetLocalAnchorA returns the local anchor point relative to bodyA's origin.
func (j *RevoluteJoint) GetLocalAnchorA() Vec2 {
	return j.localAnchorA
}

// GetLocalAnchorB returns the local anchor point relative to bodyB's origin.
func (j *RevoluteJoint) GetLocalAnchorB() Vec2 {
	return j.localAnchorB
}

func (j *RevoluteJoint) GetReferenceAngle() float64 {
	return j.referenceAngle
}

func (j *RevoluteJoint) GetAnchorA() Vec2 {
	return j.bodyA.GetWorldPoint(j.localAnchorA)
}

func (j *RevoluteJoint) GetAnchorB() Vec2 {
	return j.bodyB.GetWorldPoint(j.localAnchorB)
}

func (j *RevoluteJoint) GetReactionForce(invDt float64) Vec2 {
	return MakeVec2(j.impulse.X, j.impulse.Y).Scale(invDt)
}

func (j *RevoluteJoint) GetReactionTorque(invDt float64) float64 {
	return invDt * j.impulse.Z
}

// GetJointAngle returns the current joint angle in radians.
func (j *RevoluteJoint) GetJointAngle() float64 {
	return j.bodyB.sweep.A - j.bodyA.sweep.A - j.referenceAngle
}

// GetJointSpeed returns the current joint angle speed in radians per second.
func (j *RevoluteJoint) GetJointSpeed() float64 {
	return j.bodyB.angularVelocity - j.bodyA.angularVelocity
}

func (j *RevoluteJoint) GetLimitState() LimitState {
	return j.limitState
}

func (j *RevoluteJoint) IsMotorEnabled() bool {
	return j.enableMotor
}

func (j *RevoluteJoint) EnableMotor(flag bool) {
	if flag != j.enableMotor {
		j.bodyA.SetAwake(true)
		j.bodyB.SetAwake(true)
		j.enableMotor = flag
	}
}

// GetMotorTorque returns the current motor torque given the inverse time
// step.
func (j *RevoluteJoint) GetMotorTorque(invDt float64) float64 {
	return invDt * j.motorImpulse
}

func (j *RevoluteJoint) GetMotorSpeed() float64 {
	return j.motorSpeed
}

func (j *RevoluteJoint) SetMotorSpeed(speed float64) {
	if speed != j.motorSpeed {
		j.bodyA.SetAwake(true)
		j.bodyB.SetAwake(true)
		j.motorSpeed = speed
	}
}

func (j *RevoluteJoint) GetMaxMotorTorque() float64 {
	return j.maxMotorTorque
}

func (j *RevoluteJoint) SetMaxMotorTorque(torque float64) {
	if torque != j.maxMotorTorque {
		j.bodyA.SetAwake(true)
		j.bodyB.SetAwake(true)
		j.maxMotorTorque = torque
	}
}

func (j *RevoluteJoint) IsLimitEnabled() bool {
	return j.enableLimit
}

func (j *RevoluteJoint) EnableLimit(flag bool) {
	if flag != j.enableLimit {
		j.bodyA.SetAwake(true)
		j.bodyB.SetAwake(true)
		j.enableLimit = flag
		j.impulse.Z = 0.0
	}
}

func (j *RevoluteJoint) GetLowerLimit() float64 {
	return j.lowerAngle
}

func (j *RevoluteJoint) GetUpperLimit() float64 {
	return j.upperAngle
}

// SetLimits sets the joint limits in radians. The accumulated limit impulse
// is discarded so the next step restarts from the new bounds.
func (j *RevoluteJoint) SetLimits(lower, upper float64) {
	assert(lower <= upper)

	if lower != j.lowerAngle || upper != j.upperAngle {
		j.bodyA.SetAwake(true)
		j.bodyB.SetAwake(true)
		j.impulse.Z = 0.0
		j.lowerAngle = lower
		j.upperAngle = upper
	}
}

// String summarizes the joint configuration for diagnostics.
func (j *RevoluteJoint) String() string {
	return fmt.Sprintf(
		"revolute{anchorA: (%.15f, %.15f), anchorB: (%.15f, %.15f), referenceAngle: %.15f, limit: [%v %.15f %.15f], motor: [%v %.15f %.15f]}",
		j.localAnchorA.X, j.localAnchorA.Y,
		j.localAnchorB.X, j.localAnchorB.Y,
		j.referenceAngle,
		j.enableLimit, j.lowerAngle, j.upperAngle,
		j.enableMotor, j.motorSpeed, j.maxMotorTorque)
}

package phys2d

// JointType identifies the concrete joint variant.
type JointType uint8

const (
	JointTypeUnknown JointType = iota
	JointTypeRevolute
)

// LimitState is the rotational limit state of a joint, recomputed on every
// constraint initialization. It is explicit solver memory: the accumulated
// limit impulse carries across steps only while the state is unchanged.
type LimitState uint8

const (
	LimitInactive LimitState = iota
	LimitAtLower
	LimitAtUpper
	LimitEqual
)

func (s LimitState) String() string {
	switch s {
	case LimitInactive:
		return "inactive"
	case LimitAtLower:
		return "at-lower"
	case LimitAtUpper:
		return "at-upper"
	case LimitEqual:
		return "equal"
	}
	return "unknown"
}

// JointEdge connects bodies and joints together in a joint graph where each
// body is a node and each joint an edge. It belongs to a doubly linked list
// maintained in each attached body; each joint has two edges, one per body.
type JointEdge struct {
	Other *Body // quick access to the other attached body
	Joint Joint // the joint
	Prev  *JointEdge
	Next  *JointEdge
}

// JointDef holds the data common to all joint definitions.
type JointDef struct {
	// The joint type, set automatically by concrete definitions.
	Type JointType

	// Application specific joint data.
	UserData interface{}

	// The attached bodies.
	BodyA *Body
	BodyB *Body

	// Set to true if the attached bodies should collide.
	CollideConnected bool
}

// Joint constrains two bodies together. Some joints also feature limits and
// motors. The constraint functions read and write the solver's position and
// velocity buffers via each body's island index.
type Joint interface {
	Type() JointType

	GetBodyA() *Body
	GetBodyB() *Body

	// GetAnchorA returns the anchor point on body A in world coordinates.
	GetAnchorA() Vec2

	// GetAnchorB returns the anchor point on body B in world coordinates.
	GetAnchorB() Vec2

	// GetReactionForce returns the reaction force on body B at the anchor,
	// given the inverse time step.
	GetReactionForce(invDt float64) Vec2

	// GetReactionTorque returns the reaction torque on body B.
	GetReactionTorque(invDt float64) float64

	GetNext() Joint
	GetPrev() Joint

	GetEdgeA() *JointEdge
	GetEdgeB() *JointEdge

	GetUserData() interface{}
	SetUserData(data interface{})

	CollideConnected() bool

	InitVelocityConstraints(data SolverData)
	SolveVelocityConstraints(data SolverData)

	// SolvePositionConstraints returns true once the position error is
	// within tolerance.
	SolvePositionConstraints(data SolverData) bool

	getIslandFlag() bool
	setIslandFlag(flag bool)
	setPrev(prev Joint)
	setNext(next Joint)
}

// jointBase carries the fields common to all concrete joints.
type jointBase struct {
	jointType        JointType
	prev             Joint
	next             Joint
	edgeA            *JointEdge
	edgeB            *JointEdge
	bodyA            *Body
	bodyB            *Body
	index            int
	islandFlag       bool
	collideConnected bool
	userData         interface{}
}

func makeJointBase(def *JointDef) jointBase {
	assert(def.BodyA != def.BodyB)

	return jointBase{
		jointType:        def.Type,
		bodyA:            def.BodyA,
		bodyB:            def.BodyB,
		collideConnected: def.CollideConnected,
		userData:         def.UserData,
		edgeA:            &JointEdge{},
		edgeB:            &JointEdge{},
	}
}

func (j *jointBase) Type() JointType {
	return j.jointType
}

func (j *jointBase) GetBodyA() *Body {
	return j.bodyA
}

func (j *jointBase) GetBodyB() *Body {
	return j.bodyB
}

func (j *jointBase) GetNext() Joint {
	return j.next
}

func (j *jointBase) GetPrev() Joint {
	return j.prev
}

func (j *jointBase) GetEdgeA() *JointEdge {
	return j.edgeA
}

func (j *jointBase) GetEdgeB() *JointEdge {
	return j.edgeB
}

func (j *jointBase) GetUserData() interface{} {
	return j.userData
}

func (j *jointBase) SetUserData(data interface{}) {
	j.userData = data
}

func (j *jointBase) CollideConnected() bool {
	return j.collideConnected
}

func (j *jointBase) getIslandFlag() bool {
	return j.islandFlag
}

func (j *jointBase) setIslandFlag(flag bool) {
	j.islandFlag = flag
}

func (j *jointBase) setPrev(prev Joint) {
	j.prev = prev
}

func (j *jointBase) setNext(next Joint) {
	j.next = next
}

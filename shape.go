package phys2d

// MassData holds the mass properties computed for a shape.
type MassData struct {
	// The mass of the shape, usually in kilograms.
	Mass float64

	// The position of the shape's centroid relative to the shape's origin.
	Center Vec2

	// The rotational inertia of the shape about the local origin.
	I float64
}

// ShapeKind enumerates the four supported shape geometries. The contact
// factory dispatches narrow-phase evaluation on pairs of these.
type ShapeKind uint8

const (
	KindCircle ShapeKind = iota
	KindEdge
	KindPolygon
	KindChain

	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEdge:
		return "edge"
	case KindPolygon:
		return "polygon"
	case KindChain:
		return "chain"
	}
	return "unknown"
}

// Shape is the geometric input to collision detection. Shapes attached to
// bodies via fixtures are cloned, so definitions may live on the stack.
// A shape may encapsulate one or more child primitives.
type Shape interface {
	// Clone returns a deep copy of the concrete shape.
	Clone() Shape

	// Kind identifies the concrete geometry; use it to down-cast.
	Kind() ShapeKind

	// Radius is the rounding radius applied around the shape's hull.
	Radius() float64

	// ChildCount is the number of child primitives.
	ChildCount() int

	// TestPoint checks a world point for containment. Only meaningful for
	// closed convex shapes.
	TestPoint(xf Transform, p Vec2) bool

	// RayCast casts a ray against a child primitive.
	RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool

	// ComputeAABB computes the world axis-aligned bounding box of a child
	// primitive.
	ComputeAABB(aabb *AABB, xf Transform, childIndex int)

	// ComputeMass computes mass, centroid and rotational inertia about the
	// local origin for the given density (kg/m^2).
	ComputeMass(massData *MassData, density float64)
}

// shapeBase carries the fields common to all concrete shapes.
type shapeBase struct {
	kind ShapeKind

	// The rounding radius. For polygonal shapes this must be PolygonRadius;
	// rounded polygons are not supported.
	radius float64
}

func (s shapeBase) Kind() ShapeKind {
	return s.kind
}

func (s shapeBase) Radius() float64 {
	return s.radius
}

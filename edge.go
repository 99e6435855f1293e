package phys2d

// EdgeShape is a line segment. Edges can be connected in chains or loops to
// other edge shapes; the adjacency information is used to ensure correct
// contact normals.
type EdgeShape struct {
	shapeBase

	// The edge vertices.
	Vertex1, Vertex2 Vec2

	// Optional adjacent vertices, used for smooth collision.
	Vertex0, Vertex3       Vec2
	HasVertex0, HasVertex3 bool
}

func MakeEdgeShape() EdgeShape {
	return EdgeShape{
		shapeBase: shapeBase{kind: KindEdge, radius: PolygonRadius},
	}
}

func NewEdgeShape(v1, v2 Vec2) *EdgeShape {
	res := MakeEdgeShape()
	res.Set(v1, v2)
	return &res
}

// Set defines the segment as isolated, clearing any adjacency.
func (edge *EdgeShape) Set(v1, v2 Vec2) {
	edge.Vertex1 = v1
	edge.Vertex2 = v2
	edge.HasVertex0 = false
	edge.HasVertex3 = false
}

func (edge EdgeShape) Clone() Shape {
	clone := edge
	return &clone
}

func (edge EdgeShape) ChildCount() int {
	return 1
}

func (edge EdgeShape) TestPoint(xf Transform, p Vec2) bool {
	return false
}

// RayCast solves p1 + t*d = v1 + s*e for the ray and segment.
func (edge EdgeShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	// Put the ray into the edge's frame of reference.
	p1 := xf.Q.ApplyT(input.P1.Sub(xf.P))
	p2 := xf.Q.ApplyT(input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	v1 := edge.Vertex1
	v2 := edge.Vertex2
	e := v2.Sub(v1)
	normal := Vec2{e.Y, -e.X}
	normal.Normalize()

	// q = p1 + t * d
	// dot(normal, q - v1) = 0
	numerator := normal.Dot(v1.Sub(p1))
	denominator := normal.Dot(d)
	if denominator == 0.0 {
		return false
	}

	t := numerator / denominator
	if t < 0.0 || input.MaxFraction < t {
		return false
	}

	q := p1.Add(d.Scale(t))

	// q = v1 + s * r
	r := v2.Sub(v1)
	rr := r.Dot(r)
	if rr == 0.0 {
		return false
	}

	s := q.Sub(v1).Dot(r) / rr
	if s < 0.0 || 1.0 < s {
		return false
	}

	output.Fraction = t
	if numerator > 0.0 {
		output.Normal = xf.Q.Apply(normal).Neg()
	} else {
		output.Normal = xf.Q.Apply(normal)
	}
	return true
}

func (edge EdgeShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {
	v1 := xf.Apply(edge.Vertex1)
	v2 := xf.Apply(edge.Vertex2)

	lower := MinVec2(v1, v2)
	upper := MaxVec2(v1, v2)

	r := Vec2{edge.radius, edge.radius}
	aabb.LowerBound = lower.Sub(r)
	aabb.UpperBound = upper.Add(r)
}

func (edge EdgeShape) ComputeMass(massData *MassData, density float64) {
	massData.Mass = 0.0
	massData.Center = edge.Vertex1.Add(edge.Vertex2).Scale(0.5)
	massData.I = 0.0
}

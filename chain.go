package phys2d

// ChainShape is a free-form sequence of line segments with two-sided
// collision, so it can be used for inside and outside collision with any
// winding order. Connectivity information is used to create smooth
// collisions.
//
// The chain will not collide properly if there are self-intersections.
type ChainShape struct {
	shapeBase

	// The vertices. Owned by the shape.
	Vertices []Vec2

	PrevVertex, NextVertex       Vec2
	HasPrevVertex, HasNextVertex bool
}

func MakeChainShape() ChainShape {
	return ChainShape{
		shapeBase: shapeBase{kind: KindChain, radius: PolygonRadius},
	}
}

func NewChainShape() *ChainShape {
	res := MakeChainShape()
	return &res
}

func (chain *ChainShape) Clear() {
	chain.Vertices = nil
}

// CreateLoop creates a closed loop, duplicating the first vertex at the end.
// The supplied vertices must be distinct by more than LinearSlop.
func (chain *ChainShape) CreateLoop(vertices []Vec2) {
	assert(chain.Vertices == nil)
	count := len(vertices)
	assert(count >= 3)
	if count < 3 {
		return
	}

	for i := 1; i < count; i++ {
		// If this fires, the vertices are too close together.
		assert(vertices[i-1].DistanceSquaredTo(vertices[i]) > LinearSlop*LinearSlop)
	}

	chain.Vertices = make([]Vec2, count+1)
	copy(chain.Vertices, vertices)
	chain.Vertices[count] = chain.Vertices[0]

	chain.PrevVertex = chain.Vertices[count-1]
	chain.NextVertex = chain.Vertices[1]
	chain.HasPrevVertex = true
	chain.HasNextVertex = true
}

// CreateChain creates an open chain with two-sided collision.
func (chain *ChainShape) CreateChain(vertices []Vec2) {
	assert(chain.Vertices == nil)
	count := len(vertices)
	assert(count >= 2)

	for i := 1; i < count; i++ {
		// If this fires, the vertices are too close together.
		assert(vertices[i-1].DistanceSquaredTo(vertices[i]) > LinearSlop*LinearSlop)
	}

	chain.Vertices = make([]Vec2, count)
	copy(chain.Vertices, vertices)

	chain.HasPrevVertex = false
	chain.HasNextVertex = false
	chain.PrevVertex.SetZero()
	chain.NextVertex.SetZero()
}

// SetPrevVertex establishes connectivity to a previous segment outside the
// chain. Call this before the chain is attached to a body.
func (chain *ChainShape) SetPrevVertex(prevVertex Vec2) {
	chain.PrevVertex = prevVertex
	chain.HasPrevVertex = true
}

// SetNextVertex establishes connectivity to a following segment outside the
// chain. Call this before the chain is attached to a body.
func (chain *ChainShape) SetNextVertex(nextVertex Vec2) {
	chain.NextVertex = nextVertex
	chain.HasNextVertex = true
}

func (chain ChainShape) Clone() Shape {
	clone := MakeChainShape()
	clone.CreateChain(chain.Vertices)
	clone.PrevVertex = chain.PrevVertex
	clone.NextVertex = chain.NextVertex
	clone.HasPrevVertex = chain.HasPrevVertex
	clone.HasNextVertex = chain.HasNextVertex
	return &clone
}

func (chain ChainShape) ChildCount() int {
	// edge count = vertex count - 1
	return len(chain.Vertices) - 1
}

// GetChildEdge writes child segment index into edge, including adjacency
// from the neighboring segments.
func (chain ChainShape) GetChildEdge(edge *EdgeShape, index int) {
	count := len(chain.Vertices)
	assert(0 <= index && index < count-1)

	edge.kind = KindEdge
	edge.radius = chain.radius

	edge.Vertex1 = chain.Vertices[index+0]
	edge.Vertex2 = chain.Vertices[index+1]

	if index > 0 {
		edge.Vertex0 = chain.Vertices[index-1]
		edge.HasVertex0 = true
	} else {
		edge.Vertex0 = chain.PrevVertex
		edge.HasVertex0 = chain.HasPrevVertex
	}

	if index < count-2 {
		edge.Vertex3 = chain.Vertices[index+2]
		edge.HasVertex3 = true
	} else {
		edge.Vertex3 = chain.NextVertex
		edge.HasVertex3 = chain.HasNextVertex
	}
}

func (chain ChainShape) TestPoint(xf Transform, p Vec2) bool {
	return false
}

func (chain ChainShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	count := len(chain.Vertices)
	assert(childIndex < count)

	edgeShape := MakeEdgeShape()

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == count {
		i2 = 0
	}

	edgeShape.Vertex1 = chain.Vertices[i1]
	edgeShape.Vertex2 = chain.Vertices[i2]

	return edgeShape.RayCast(output, input, xf, 0)
}

func (chain ChainShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {
	count := len(chain.Vertices)
	assert(childIndex < count)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == count {
		i2 = 0
	}

	v1 := xf.Apply(chain.Vertices[i1])
	v2 := xf.Apply(chain.Vertices[i2])

	aabb.LowerBound = MinVec2(v1, v2)
	aabb.UpperBound = MaxVec2(v1, v2)
}

// ComputeMass is a no-op; chains have no interior.
func (chain ChainShape) ComputeMass(massData *MassData, density float64) {
	massData.Mass = 0.0
	massData.Center.SetZero()
	massData.I = 0.0
}

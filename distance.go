package phys2d

// GJK distance between convex shapes, using Voronoi regions and barycentric
// coordinates (Christer Ericson, "Real-Time Collision Detection").

// DistanceProxy encapsulates any convex shape as a point cloud with a
// rounding radius for use by the distance algorithm.
type DistanceProxy struct {
	buffer   [2]Vec2
	vertices []Vec2
	count    int
	radius   float64
}

// Set extracts the convex hull of the given child primitive.
func (p *DistanceProxy) Set(shape Shape, index int) {
	switch shape.Kind() {
	case KindCircle:
		circle := shape.(*CircleShape)
		p.vertices = []Vec2{circle.P}
		p.count = 1
		p.radius = circle.radius

	case KindPolygon:
		polygon := shape.(*PolygonShape)
		p.vertices = polygon.Vertices[:]
		p.count = polygon.Count
		p.radius = polygon.radius

	case KindChain:
		chain := shape.(*ChainShape)
		count := len(chain.Vertices)
		assert(0 <= index && index < count)

		p.buffer[0] = chain.Vertices[index]
		if index+1 < count {
			p.buffer[1] = chain.Vertices[index+1]
		} else {
			p.buffer[1] = chain.Vertices[0]
		}

		p.vertices = p.buffer[:]
		p.count = 2
		p.radius = chain.radius

	case KindEdge:
		edge := shape.(*EdgeShape)
		p.vertices = []Vec2{edge.Vertex1, edge.Vertex2}
		p.count = 2
		p.radius = edge.radius

	default:
		assert(false)
	}
}

func (p DistanceProxy) VertexCount() int {
	return p.count
}

func (p DistanceProxy) Vertex(index int) Vec2 {
	assert(0 <= index && index < p.count)
	return p.vertices[index]
}

// Support returns the index of the vertex most extreme in direction d.
func (p DistanceProxy) Support(d Vec2) int {
	bestIndex := 0
	bestValue := p.vertices[0].Dot(d)
	for i := 1; i < p.count; i++ {
		value := p.vertices[i].Dot(d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}
	return bestIndex
}

func (p DistanceProxy) SupportVertex(d Vec2) Vec2 {
	return p.vertices[p.Support(d)]
}

// SimplexCache warm starts Distance across steps. Set Count to zero on the
// first call.
type SimplexCache struct {
	// Metric is the length or area of the cached simplex.
	Metric float64
	Count  int

	// Vertex indices on each proxy.
	IndexA [3]int
	IndexB [3]int
}

// DistanceInput carries the query shapes and transforms. When UseRadii is
// set, the rounding radii are subtracted from the result.
type DistanceInput struct {
	ProxyA     DistanceProxy
	ProxyB     DistanceProxy
	TransformA Transform
	TransformB Transform
	UseRadii   bool
}

// TermReason identifies which exit path ended the distance iteration.
type TermReason uint8

const (
	// TermEnclosed: the simplex grew to a triangle containing the origin,
	// so the shapes overlap.
	TermEnclosed TermReason = iota

	// TermDegenerate: the search direction vanished; the origin lies on a
	// simplex feature and the closest point cannot be refined further.
	TermDegenerate

	// TermDuplicate: the new support point was already in the previous
	// simplex. This is the normal convergence path.
	TermDuplicate

	// TermMaxIters: the iteration cap was reached without convergence.
	TermMaxIters
)

func (t TermReason) String() string {
	switch t {
	case TermEnclosed:
		return "enclosed"
	case TermDegenerate:
		return "degenerate"
	case TermDuplicate:
		return "duplicate"
	case TermMaxIters:
		return "max-iters"
	}
	return "unknown"
}

// DistanceOutput reports the closest points and how the query terminated.
type DistanceOutput struct {
	// Closest points on each shape.
	PointA Vec2
	PointB Vec2

	Distance   float64
	Iterations int
	Term       TermReason
}

type simplexVertex struct {
	wA     Vec2    // support point on proxyA
	wB     Vec2    // support point on proxyB
	w      Vec2    // wB - wA
	a      float64 // barycentric coordinate for the closest point
	indexA int
	indexB int
}

type simplex struct {
	vs    [3]simplexVertex
	count int
}

func (s *simplex) readCache(cache *SimplexCache, proxyA *DistanceProxy, transformA Transform, proxyB *DistanceProxy, transformB Transform) {
	assert(cache.Count <= 3)

	// Copy data from the cache.
	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		v := &s.vs[i]
		v.indexA = cache.IndexA[i]
		v.indexB = cache.IndexB[i]
		v.wA = transformA.Apply(proxyA.Vertex(v.indexA))
		v.wB = transformB.Apply(proxyB.Vertex(v.indexB))
		v.w = v.wB.Sub(v.wA)
		v.a = 0.0
	}

	// If the new metric is substantially different from the cached one,
	// flush the simplex.
	if s.count > 1 {
		metric1 := cache.Metric
		metric2 := s.metric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < epsilon {
			s.count = 0
		}
	}

	// The cache is empty or invalid; seed from vertex 0.
	if s.count == 0 {
		v := &s.vs[0]
		v.indexA = 0
		v.indexB = 0
		v.wA = transformA.Apply(proxyA.Vertex(0))
		v.wB = transformB.Apply(proxyB.Vertex(0))
		v.w = v.wB.Sub(v.wA)
		v.a = 1.0
		s.count = 1
	}
}

func (s *simplex) writeCache(cache *SimplexCache) {
	cache.Metric = s.metric()
	cache.Count = s.count
	for i := 0; i < s.count; i++ {
		cache.IndexA[i] = s.vs[i].indexA
		cache.IndexB[i] = s.vs[i].indexB
	}
}

func (s *simplex) searchDirection() Vec2 {
	switch s.count {
	case 1:
		return s.vs[0].w.Neg()

	case 2:
		e12 := s.vs[1].w.Sub(s.vs[0].w)
		sgn := e12.Cross(s.vs[0].w.Neg())
		if sgn > 0.0 {
			// Origin is left of e12.
			return CrossSV(1.0, e12)
		}
		// Origin is right of e12.
		return CrossVS(e12, 1.0)

	default:
		assert(false)
		return Vec2{}
	}
}

func (s *simplex) witnessPoints(pA, pB *Vec2) {
	switch s.count {
	case 1:
		*pA = s.vs[0].wA
		*pB = s.vs[0].wB

	case 2:
		*pA = s.vs[0].wA.Scale(s.vs[0].a).Add(s.vs[1].wA.Scale(s.vs[1].a))
		*pB = s.vs[0].wB.Scale(s.vs[0].a).Add(s.vs[1].wB.Scale(s.vs[1].a))

	case 3:
		*pA = s.vs[0].wA.Scale(s.vs[0].a).
			Add(s.vs[1].wA.Scale(s.vs[1].a)).
			Add(s.vs[2].wA.Scale(s.vs[2].a))
		*pB = *pA

	default:
		assert(false)
	}
}

func (s *simplex) metric() float64 {
	switch s.count {
	case 1:
		return 0.0

	case 2:
		return s.vs[0].w.DistanceTo(s.vs[1].w)

	case 3:
		return s.vs[1].w.Sub(s.vs[0].w).Cross(s.vs[2].w.Sub(s.vs[0].w))

	default:
		assert(false)
		return 0.0
	}
}

// solve2 reduces a line segment using barycentric coordinates.
func (s *simplex) solve2() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	e12 := w2.Sub(w1)

	// w1 region
	d12_2 := -w1.Dot(e12)
	if d12_2 <= 0.0 {
		// a2 <= 0, so we clamp it to 0.
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// w2 region
	d12_1 := w2.Dot(e12)
	if d12_1 <= 0.0 {
		// a1 <= 0, so we clamp it to 0.
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// Must be in e12 region.
	invD12 := 1.0 / (d12_1 + d12_2)
	s.vs[0].a = d12_1 * invD12
	s.vs[1].a = d12_2 * invD12
	s.count = 2
}

// solve3 reduces a triangle. Possible regions: each vertex, each edge, or
// the triangle interior.
func (s *simplex) solve3() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	w3 := s.vs[2].w

	// Edge12
	// [1      1     ][a1] = [1]
	// [w1.e12 w2.e12][a2] = [0]
	// a3 = 0
	e12 := w2.Sub(w1)
	d12_1 := w2.Dot(e12)
	d12_2 := -w1.Dot(e12)

	// Edge13
	// [1      1     ][a1] = [1]
	// [w1.e13 w3.e13][a3] = [0]
	// a2 = 0
	e13 := w3.Sub(w1)
	d13_1 := w3.Dot(e13)
	d13_2 := -w1.Dot(e13)

	// Edge23
	// [1      1     ][a2] = [1]
	// [w2.e23 w3.e23][a3] = [0]
	// a1 = 0
	e23 := w3.Sub(w2)
	d23_1 := w3.Dot(e23)
	d23_2 := -w2.Dot(e23)

	// Triangle123
	n123 := e12.Cross(e13)

	d123_1 := n123 * w2.Cross(w3)
	d123_2 := n123 * w3.Cross(w1)
	d123_3 := n123 * w1.Cross(w2)

	// w1 region
	if d12_2 <= 0.0 && d13_2 <= 0.0 {
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// e12
	if d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0 {
		invD12 := 1.0 / (d12_1 + d12_2)
		s.vs[0].a = d12_1 * invD12
		s.vs[1].a = d12_2 * invD12
		s.count = 2
		return
	}

	// e13
	if d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0 {
		invD13 := 1.0 / (d13_1 + d13_2)
		s.vs[0].a = d13_1 * invD13
		s.vs[2].a = d13_2 * invD13
		s.count = 2
		s.vs[1] = s.vs[2]
		return
	}

	// w2 region
	if d12_1 <= 0.0 && d23_2 <= 0.0 {
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// w3 region
	if d13_1 <= 0.0 && d23_1 <= 0.0 {
		s.vs[2].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[2]
		return
	}

	// e23
	if d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0 {
		invD23 := 1.0 / (d23_1 + d23_2)
		s.vs[1].a = d23_1 * invD23
		s.vs[2].a = d23_2 * invD23
		s.count = 2
		s.vs[0] = s.vs[2]
		return
	}

	// Must be in triangle123.
	invD123 := 1.0 / (d123_1 + d123_2 + d123_3)
	s.vs[0].a = d123_1 * invD123
	s.vs[1].a = d123_2 * invD123
	s.vs[2].a = d123_3 * invD123
	s.count = 3
}

const maxGJKIterations = 20

// Distance computes the closest points between two convex proxies. On the
// first call set cache.Count to zero; afterwards the cache carries the final
// simplex across calls for temporal coherence.
func Distance(output *DistanceOutput, cache *SimplexCache, input *DistanceInput) {
	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	transformA := input.TransformA
	transformB := input.TransformB

	var sx simplex
	sx.readCache(cache, proxyA, transformA, proxyB, transformB)

	// Vertex index pairs of the previous simplex, used to detect duplicate
	// support points and prevent cycling.
	var saveA, saveB [3]int
	saveCount := 0

	term := TermMaxIters

	iter := 0
	for iter < maxGJKIterations {
		// Copy the simplex so we can identify duplicates.
		saveCount = sx.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = sx.vs[i].indexA
			saveB[i] = sx.vs[i].indexB
		}

		switch sx.count {
		case 1:
		case 2:
			sx.solve2()
		case 3:
			sx.solve3()
		default:
			assert(false)
		}

		// With 3 points remaining the origin is inside the triangle.
		if sx.count == 3 {
			term = TermEnclosed
			break
		}

		d := sx.searchDirection()

		// Ensure the search direction is numerically fit.
		if d.LengthSquared() < epsilon*epsilon {
			// The origin is probably contained by a line segment or
			// triangle, so the shapes overlap. We cannot return zero here
			// though: when the simplex is a point, segment or triangle it
			// is hard to tell whether the origin is inside the CSO or
			// merely very close to it.
			term = TermDegenerate
			break
		}

		// Compute a tentative new simplex vertex using support points.
		vertex := &sx.vs[sx.count]
		vertex.indexA = proxyA.Support(transformA.Q.ApplyT(d.Neg()))
		vertex.wA = transformA.Apply(proxyA.Vertex(vertex.indexA))
		vertex.indexB = proxyB.Support(transformB.Q.ApplyT(d))
		vertex.wB = transformB.Apply(proxyB.Vertex(vertex.indexB))
		vertex.w = vertex.wB.Sub(vertex.wA)

		// Iteration count is equated to the number of support point calls.
		iter++

		// Check for duplicate support points. This is the main termination
		// criterion; a duplicate means we must exit to avoid cycling.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if vertex.indexA == saveA[i] && vertex.indexB == saveB[i] {
				duplicate = true
				break
			}
		}
		if duplicate {
			term = TermDuplicate
			break
		}

		// The new vertex is ok and needed.
		sx.count++
	}

	sx.witnessPoints(&output.PointA, &output.PointB)
	output.Distance = output.PointA.DistanceTo(output.PointB)
	output.Iterations = iter
	output.Term = term

	// Cache the simplex.
	sx.writeCache(cache)

	if input.UseRadii {
		rA := proxyA.radius
		rB := proxyB.radius

		if output.Distance > rA+rB && output.Distance > epsilon {
			// The shapes are still not overlapped; move the witness points
			// to the outer surfaces.
			output.Distance -= rA + rB
			normal := output.PointB.Sub(output.PointA)
			normal.Normalize()
			output.PointA = output.PointA.Add(normal.Scale(rA))
			output.PointB = output.PointB.Sub(normal.Scale(rB))
		} else {
			// The shapes are overlapped when radii are considered; move the
			// witness points to the middle.
			p := output.PointA.Add(output.PointB).Scale(0.5)
			output.PointA = p
			output.PointB = p
			output.Distance = 0.0
		}
	}
}

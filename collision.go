package phys2d

import "math"

const nullFeature uint8 = math.MaxUint8

// Contact feature types.
const (
	featureVertex uint8 = 0
	featureFace   uint8 = 1
)

// ContactFeature names the features that intersect to form a contact point.
// This must fit in 4 bytes.
type ContactFeature struct {
	IndexA uint8 // feature index on shape A
	IndexB uint8 // feature index on shape B
	TypeA  uint8 // feature type on shape A
	TypeB  uint8 // feature type on shape B
}

// ContactID identifies a contact point between two shapes across steps.
type ContactID ContactFeature

// Key packs the feature into a single word for quick comparison.
func (id ContactID) Key() uint32 {
	var key uint32
	key |= uint32(id.IndexA)
	key |= uint32(id.IndexB) << 8
	key |= uint32(id.TypeA) << 16
	key |= uint32(id.TypeB) << 24
	return key
}

func (id *ContactID) SetKey(key uint32) {
	id.IndexA = uint8(key & 0xFF)
	id.IndexB = uint8(key >> 8 & 0xFF)
	id.TypeA = uint8(key >> 16 & 0xFF)
	id.TypeB = uint8(key >> 24 & 0xFF)
}

// ManifoldPoint is a contact point belonging to a manifold. The local point
// usage depends on the manifold type:
//
//	ManifoldCircles: the local center of circleB
//	ManifoldFaceA:   the local center of circleB or the clip point of polygonB
//	ManifoldFaceB:   the clip point of polygonA
//
// This structure is stored across time steps, so keep it small. The impulses
// are internal caches for warm starting and may not provide reliable contact
// forces, especially for high speed collisions.
type ManifoldPoint struct {
	LocalPoint     Vec2
	NormalImpulse  float64 // the non-penetration impulse
	TangentImpulse float64 // the friction impulse
	ID             ContactID
}

// ManifoldType selects how a manifold's local point and normal are
// interpreted.
type ManifoldType uint8

const (
	ManifoldCircles ManifoldType = iota
	ManifoldFaceA
	ManifoldFaceB
)

// Manifold describes the touching region of two convex shapes. The local
// point usage depends on the type:
//
//	ManifoldCircles: the local center of circleA
//	ManifoldFaceA:   the center of faceA
//	ManifoldFaceB:   the center of faceB
//
// Similarly the local normal is unused for circles and is the face normal
// otherwise. Contacts are stored this way so that position correction can
// account for movement. This structure persists across time steps.
type Manifold struct {
	Points      [MaxManifoldPoints]ManifoldPoint
	LocalNormal Vec2
	LocalPoint  Vec2
	Type        ManifoldType
	PointCount  int
}

// WorldManifold is the world-space evaluation of a manifold at given
// transforms.
type WorldManifold struct {
	// Normal points from A to B.
	Normal Vec2

	// World contact points.
	Points [MaxManifoldPoints]Vec2

	// Separations; negative indicates overlap, in meters.
	Separations [MaxManifoldPoints]float64
}

// Initialize evaluates the manifold in world coordinates.
func (wm *WorldManifold) Initialize(manifold *Manifold, xfA Transform, radiusA float64, xfB Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case ManifoldCircles:
		wm.Normal = Vec2{1.0, 0.0}
		pointA := xfA.Apply(manifold.LocalPoint)
		pointB := xfB.Apply(manifold.Points[0].LocalPoint)
		if pointA.DistanceSquaredTo(pointB) > epsilon*epsilon {
			wm.Normal = pointB.Sub(pointA)
			wm.Normal.Normalize()
		}

		cA := pointA.Add(wm.Normal.Scale(radiusA))
		cB := pointB.Sub(wm.Normal.Scale(radiusB))

		wm.Points[0] = cA.Add(cB).Scale(0.5)
		wm.Separations[0] = cB.Sub(cA).Dot(wm.Normal)

	case ManifoldFaceA:
		wm.Normal = xfA.Q.Apply(manifold.LocalNormal)
		planePoint := xfA.Apply(manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := xfB.Apply(manifold.Points[i].LocalPoint)
			cA := clipPoint.Add(wm.Normal.Scale(radiusA - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cB := clipPoint.Sub(wm.Normal.Scale(radiusB))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cB.Sub(cA).Dot(wm.Normal)
		}

	case ManifoldFaceB:
		wm.Normal = xfB.Q.Apply(manifold.LocalNormal)
		planePoint := xfB.Apply(manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := xfA.Apply(manifold.Points[i].LocalPoint)
			cB := clipPoint.Add(wm.Normal.Scale(radiusB - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cA := clipPoint.Sub(wm.Normal.Scale(radiusA))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cA.Sub(cB).Dot(wm.Normal)
		}

		// Ensure the normal points from A to B.
		wm.Normal = wm.Normal.Neg()
	}
}

// PointState tracks a manifold point's fate across an update.
type PointState uint8

const (
	NullState    PointState = iota // point does not exist
	AddState                       // point was added in the update
	PersistState                   // point persisted across the update
	RemoveState                    // point was removed in the update
)

// GetPointStates computes the point states of two manifolds: state1 holds
// the fate of manifold1's points, state2 the provenance of manifold2's.
func GetPointStates(state1, state2 *[MaxManifoldPoints]PointState, manifold1, manifold2 *Manifold) {
	for i := 0; i < MaxManifoldPoints; i++ {
		state1[i] = NullState
		state2[i] = NullState
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		id := manifold1.Points[i].ID

		state1[i] = RemoveState
		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].ID.Key() == id.Key() {
				state1[i] = PersistState
				break
			}
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		id := manifold2.Points[i].ID

		state2[i] = AddState
		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].ID.Key() == id.Key() {
				state2[i] = PersistState
				break
			}
		}
	}
}

// ClipVertex is used for computing contact manifolds via polygon clipping.
type ClipVertex struct {
	V  Vec2
	ID ContactID
}

// RayCastInput describes a ray extending from P1 to P1 + MaxFraction*(P2-P1).
type RayCastInput struct {
	P1, P2      Vec2
	MaxFraction float64
}

// RayCastOutput reports a hit at P1 + Fraction*(P2-P1).
type RayCastOutput struct {
	Normal   Vec2
	Fraction float64
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	LowerBound Vec2
	UpperBound Vec2
}

func (bb AABB) Center() Vec2 {
	return bb.LowerBound.Add(bb.UpperBound).Scale(0.5)
}

// Extents returns the half-widths.
func (bb AABB) Extents() Vec2 {
	return bb.UpperBound.Sub(bb.LowerBound).Scale(0.5)
}

func (bb AABB) Perimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

// Combine grows this box to enclose the other.
func (bb *AABB) Combine(aabb AABB) {
	bb.LowerBound = MinVec2(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = MaxVec2(bb.UpperBound, aabb.UpperBound)
}

// CombineTwo sets this box to the union of two others.
func (bb *AABB) CombineTwo(aabb1, aabb2 AABB) {
	bb.LowerBound = MinVec2(aabb1.LowerBound, aabb2.LowerBound)
	bb.UpperBound = MaxVec2(aabb1.UpperBound, aabb2.UpperBound)
}

func (bb AABB) Contains(aabb AABB) bool {
	return bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y
}

func (bb AABB) IsValid() bool {
	d := bb.UpperBound.Sub(bb.LowerBound)
	valid := d.X >= 0.0 && d.Y >= 0.0
	return valid && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
}

// RayCast intersects the ray with the box using the slab method. From
// "Real-Time Collision Detection", p179.
func (bb AABB) RayCast(output *RayCastOutput, input RayCastInput) bool {
	tmin := -maxFloat
	tmax := maxFloat

	p := input.P1
	d := input.P2.Sub(input.P1)
	absD := AbsVec2(d)

	var normal Vec2

	for i := 0; i < 2; i++ {
		if absD.Component(i) < epsilon {
			// Parallel.
			if p.Component(i) < bb.LowerBound.Component(i) || bb.UpperBound.Component(i) < p.Component(i) {
				return false
			}
		} else {
			invD := 1.0 / d.Component(i)
			t1 := (bb.LowerBound.Component(i) - p.Component(i)) * invD
			t2 := (bb.UpperBound.Component(i) - p.Component(i)) * invD

			// Sign of the normal vector.
			s := -1.0
			if t1 > t2 {
				t1, t2 = t2, t1
				s = 1.0
			}

			// Push the min up.
			if t1 > tmin {
				normal.SetZero()
				normal.SetComponent(i, s)
				tmin = t1
			}

			// Pull the max down.
			tmax = math.Min(tmax, t2)

			if tmin > tmax {
				return false
			}
		}
	}

	// The ray may start inside the box or intersect beyond the max fraction.
	if tmin < 0.0 || input.MaxFraction < tmin {
		return false
	}

	output.Fraction = tmin
	output.Normal = normal
	return true
}

// OverlapAABB reports whether two boxes overlap.
func OverlapAABB(a, b AABB) bool {
	d1 := b.LowerBound.Sub(a.UpperBound)
	d2 := a.LowerBound.Sub(b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}
	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}
	return true
}

// clipSegmentToLine performs Sutherland-Hodgman clipping of a segment
// against a half-plane. Returns the number of output points.
func clipSegmentToLine(vOut []ClipVertex, vIn []ClipVertex, normal Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	// Distances of the end points to the line.
	distance0 := normal.Dot(vIn[0].V) - offset
	distance1 := normal.Dot(vIn[1].V) - offset

	// Keep points behind the plane.
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// The points are on different sides of the plane.
	if distance0*distance1 < 0.0 {
		// Find the intersection point of the edge and the plane.
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = vIn[0].V.Add(vIn[1].V.Sub(vIn[0].V).Scale(interp))

		// VertexA is hitting edgeB.
		vOut[numOut].ID.IndexA = uint8(vertexIndexA)
		vOut[numOut].ID.IndexB = vIn[0].ID.IndexB
		vOut[numOut].ID.TypeA = featureVertex
		vOut[numOut].ID.TypeB = featureFace
		numOut++
	}

	return numOut
}

// ShapesOverlap runs a fresh distance query and reports whether the child
// primitives overlap within tolerance.
func ShapesOverlap(shapeA Shape, indexA int, shapeB Shape, indexB int, xfA, xfB Transform) bool {
	var input DistanceInput
	input.ProxyA.Set(shapeA, indexA)
	input.ProxyB.Set(shapeB, indexB)
	input.TransformA = xfA
	input.TransformB = xfB
	input.UseRadii = true

	var cache SimplexCache
	var output DistanceOutput

	Distance(&output, &cache, &input)

	return output.Distance < 10.0*epsilon
}

package phys2d

import "math"

// CollideEdgeAndCircle computes contact points for an edge versus a circle,
// accounting for edge connectivity.
func CollideEdgeAndCircle(manifold *Manifold, edgeA *EdgeShape, xfA Transform, circleB *CircleShape, xfB Transform) {
	manifold.PointCount = 0

	// Compute the circle in the frame of the edge.
	Q := xfA.ApplyT(xfB.Apply(circleB.P))

	A := edgeA.Vertex1
	B := edgeA.Vertex2
	e := B.Sub(A)

	// Barycentric coordinates.
	u := e.Dot(B.Sub(Q))
	v := e.Dot(Q.Sub(A))

	radius := edgeA.radius + circleB.radius

	var cf ContactFeature
	cf.IndexB = 0
	cf.TypeB = featureVertex

	// Region A
	if v <= 0.0 {
		P := A
		d := Q.Sub(P)
		dd := d.Dot(d)
		if dd > radius*radius {
			return
		}

		// Is there an edge connected to A?
		if edgeA.HasVertex0 {
			A1 := edgeA.Vertex0
			B1 := A
			e1 := B1.Sub(A1)
			u1 := e1.Dot(B1.Sub(Q))

			// Is the circle in Region AB of the previous edge?
			if u1 > 0.0 {
				return
			}
		}

		cf.IndexA = 0
		cf.TypeA = featureVertex
		manifold.PointCount = 1
		manifold.Type = ManifoldCircles
		manifold.LocalNormal.SetZero()
		manifold.LocalPoint = P
		manifold.Points[0].ID = ContactID(cf)
		manifold.Points[0].LocalPoint = circleB.P
		return
	}

	// Region B
	if u <= 0.0 {
		P := B
		d := Q.Sub(P)
		dd := d.Dot(d)
		if dd > radius*radius {
			return
		}

		// Is there an edge connected to B?
		if edgeA.HasVertex3 {
			B2 := edgeA.Vertex3
			A2 := B
			e2 := B2.Sub(A2)
			v2 := e2.Dot(Q.Sub(A2))

			// Is the circle in Region AB of the next edge?
			if v2 > 0.0 {
				return
			}
		}

		cf.IndexA = 1
		cf.TypeA = featureVertex
		manifold.PointCount = 1
		manifold.Type = ManifoldCircles
		manifold.LocalNormal.SetZero()
		manifold.LocalPoint = P
		manifold.Points[0].ID = ContactID(cf)
		manifold.Points[0].LocalPoint = circleB.P
		return
	}

	// Region AB
	den := e.Dot(e)
	assert(den > 0.0)
	P := A.Scale(u).Add(B.Scale(v)).Scale(1.0 / den)
	d := Q.Sub(P)
	dd := d.Dot(d)
	if dd > radius*radius {
		return
	}

	n := Vec2{-e.Y, e.X}
	if n.Dot(Q.Sub(A)) < 0.0 {
		n = n.Neg()
	}
	n.Normalize()

	cf.IndexA = 0
	cf.TypeA = featureFace
	manifold.PointCount = 1
	manifold.Type = ManifoldFaceA
	manifold.LocalNormal = n
	manifold.LocalPoint = A
	manifold.Points[0].ID = ContactID(cf)
	manifold.Points[0].LocalPoint = circleB.P
}

// epAxis keeps track of the best separating axis.
type epAxisType uint8

const (
	epAxisUnknown epAxisType = iota
	epAxisEdgeA
	epAxisEdgeB
)

type epAxis struct {
	typ        epAxisType
	index      int
	separation float64
}

// tempPolygon holds polygon B expressed in frame A.
type tempPolygon struct {
	vertices [MaxPolygonVertices]Vec2
	normals  [MaxPolygonVertices]Vec2
	count    int
}

// referenceFace is the face used for clipping.
type referenceFace struct {
	i1, i2 int
	v1, v2 Vec2
	normal Vec2

	sideNormal1 Vec2
	sideOffset1 float64

	sideNormal2 Vec2
	sideOffset2 float64
}

// epCollider collides an edge and a polygon, taking edge adjacency into
// account.
type epCollider struct {
	polygonB tempPolygon

	xf                        Transform
	centroidB                 Vec2
	v0, v1, v2, v3            Vec2
	normal0, normal1, normal2 Vec2
	normal                    Vec2
	lowerLimit, upperLimit    Vec2
	radius                    float64
	front                     bool
}

// Algorithm:
// 1. Classify v1 and v2
// 2. Classify polygon centroid as front or back
// 3. Flip normal if necessary
// 4. Initialize normal range to [-pi, pi] about face normal
// 5. Adjust normal range according to adjacent edges
// 6. Visit each separating axis, only accept axes within the range
// 7. Return if any axis indicates separation
// 8. Clip
func (collider *epCollider) collide(manifold *Manifold, edgeA *EdgeShape, xfA Transform, polygonB *PolygonShape, xfB Transform) {
	collider.xf = MulTTransforms(xfA, xfB)

	collider.centroidB = collider.xf.Apply(polygonB.Centroid)

	collider.v0 = edgeA.Vertex0
	collider.v1 = edgeA.Vertex1
	collider.v2 = edgeA.Vertex2
	collider.v3 = edgeA.Vertex3

	hasVertex0 := edgeA.HasVertex0
	hasVertex3 := edgeA.HasVertex3

	edge1 := collider.v2.Sub(collider.v1)
	edge1.Normalize()
	collider.normal1 = Vec2{edge1.Y, -edge1.X}
	offset1 := collider.normal1.Dot(collider.centroidB.Sub(collider.v1))
	offset0 := 0.0
	offset2 := 0.0
	convex1 := false
	convex2 := false

	// Is there a preceding edge?
	if hasVertex0 {
		edge0 := collider.v1.Sub(collider.v0)
		edge0.Normalize()
		collider.normal0 = Vec2{edge0.Y, -edge0.X}
		convex1 = edge0.Cross(edge1) >= 0.0
		offset0 = collider.normal0.Dot(collider.centroidB.Sub(collider.v0))
	}

	// Is there a following edge?
	if hasVertex3 {
		edge2 := collider.v3.Sub(collider.v2)
		edge2.Normalize()
		collider.normal2 = Vec2{edge2.Y, -edge2.X}
		convex2 = edge1.Cross(edge2) > 0.0
		offset2 = collider.normal2.Dot(collider.centroidB.Sub(collider.v2))
	}

	// Determine front or back collision and the collision normal limits.
	if hasVertex0 && hasVertex3 {
		if convex1 && convex2 {
			collider.front = offset0 >= 0.0 || offset1 >= 0.0 || offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1.Neg()
			}
		} else if convex1 {
			collider.front = offset0 >= 0.0 || (offset1 >= 0.0 && offset2 >= 0.0)
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal1.Neg()
			}
		} else if convex2 {
			collider.front = offset2 >= 0.0 || (offset0 >= 0.0 && offset1 >= 0.0)
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal0.Neg()
			}
		} else {
			collider.front = offset0 >= 0.0 && offset1 >= 0.0 && offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal0.Neg()
			}
		}
	} else if hasVertex0 {
		if convex1 {
			collider.front = offset0 >= 0.0 || offset1 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal0
				collider.upperLimit = collider.normal1.Neg()
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1.Neg()
			}
		} else {
			collider.front = offset0 >= 0.0 && offset1 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal1.Neg()
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1
				collider.upperLimit = collider.normal0.Neg()
			}
		}
	} else if hasVertex3 {
		if convex2 {
			collider.front = offset1 >= 0.0 || offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal2
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1
			}
		} else {
			collider.front = offset1 >= 0.0 && offset2 >= 0.0
			if collider.front {
				collider.normal = collider.normal1
				collider.lowerLimit = collider.normal1.Neg()
				collider.upperLimit = collider.normal1
			} else {
				collider.normal = collider.normal1.Neg()
				collider.lowerLimit = collider.normal2.Neg()
				collider.upperLimit = collider.normal1
			}
		}
	} else {
		collider.front = offset1 >= 0.0
		if collider.front {
			collider.normal = collider.normal1
			collider.lowerLimit = collider.normal1.Neg()
			collider.upperLimit = collider.normal1.Neg()
		} else {
			collider.normal = collider.normal1.Neg()
			collider.lowerLimit = collider.normal1
			collider.upperLimit = collider.normal1
		}
	}

	// Get polygonB in frameA.
	collider.polygonB.count = polygonB.Count
	for i := 0; i < polygonB.Count; i++ {
		collider.polygonB.vertices[i] = collider.xf.Apply(polygonB.Vertices[i])
		collider.polygonB.normals[i] = collider.xf.Q.Apply(polygonB.Normals[i])
	}

	collider.radius = polygonB.radius + edgeA.radius

	manifold.PointCount = 0

	edgeAxis := collider.computeEdgeSeparation()

	// If no valid normal can be found this edge should not collide.
	if edgeAxis.typ == epAxisUnknown {
		return
	}

	if edgeAxis.separation > collider.radius {
		return
	}

	polygonAxis := collider.computePolygonSeparation()
	if polygonAxis.typ != epAxisUnknown && polygonAxis.separation > collider.radius {
		return
	}

	// Use hysteresis for jitter reduction.
	const relativeTol = 0.98
	const absoluteTol = 0.001

	var primaryAxis epAxis
	if polygonAxis.typ == epAxisUnknown {
		primaryAxis = edgeAxis
	} else if polygonAxis.separation > relativeTol*edgeAxis.separation+absoluteTol {
		primaryAxis = polygonAxis
	} else {
		primaryAxis = edgeAxis
	}

	ie := make([]ClipVertex, 2)
	var rf referenceFace
	if primaryAxis.typ == epAxisEdgeA {
		manifold.Type = ManifoldFaceA

		// Search for the polygon normal that is most anti-parallel to the
		// edge normal.
		bestIndex := 0
		bestValue := collider.normal.Dot(collider.polygonB.normals[0])
		for i := 1; i < collider.polygonB.count; i++ {
			value := collider.normal.Dot(collider.polygonB.normals[i])
			if value < bestValue {
				bestValue = value
				bestIndex = i
			}
		}

		i1 := bestIndex
		i2 := 0
		if i1+1 < collider.polygonB.count {
			i2 = i1 + 1
		}

		ie[0].V = collider.polygonB.vertices[i1]
		ie[0].ID.IndexA = 0
		ie[0].ID.IndexB = uint8(i1)
		ie[0].ID.TypeA = featureFace
		ie[0].ID.TypeB = featureVertex

		ie[1].V = collider.polygonB.vertices[i2]
		ie[1].ID.IndexA = 0
		ie[1].ID.IndexB = uint8(i2)
		ie[1].ID.TypeA = featureFace
		ie[1].ID.TypeB = featureVertex

		if collider.front {
			rf.i1 = 0
			rf.i2 = 1
			rf.v1 = collider.v1
			rf.v2 = collider.v2
			rf.normal = collider.normal1
		} else {
			rf.i1 = 1
			rf.i2 = 0
			rf.v1 = collider.v2
			rf.v2 = collider.v1
			rf.normal = collider.normal1.Neg()
		}
	} else {
		manifold.Type = ManifoldFaceB

		ie[0].V = collider.v1
		ie[0].ID.IndexA = 0
		ie[0].ID.IndexB = uint8(primaryAxis.index)
		ie[0].ID.TypeA = featureVertex
		ie[0].ID.TypeB = featureFace

		ie[1].V = collider.v2
		ie[1].ID.IndexA = 0
		ie[1].ID.IndexB = uint8(primaryAxis.index)
		ie[1].ID.TypeA = featureVertex
		ie[1].ID.TypeB = featureFace

		rf.i1 = primaryAxis.index
		if rf.i1+1 < collider.polygonB.count {
			rf.i2 = rf.i1 + 1
		} else {
			rf.i2 = 0
		}

		rf.v1 = collider.polygonB.vertices[rf.i1]
		rf.v2 = collider.polygonB.vertices[rf.i2]
		rf.normal = collider.polygonB.normals[rf.i1]
	}

	rf.sideNormal1 = Vec2{rf.normal.Y, -rf.normal.X}
	rf.sideNormal2 = rf.sideNormal1.Neg()
	rf.sideOffset1 = rf.sideNormal1.Dot(rf.v1)
	rf.sideOffset2 = rf.sideNormal2.Dot(rf.v2)

	// Clip the incident edge against the extruded side edges.
	clipPoints1 := make([]ClipVertex, 2)
	clipPoints2 := make([]ClipVertex, 2)

	np := clipSegmentToLine(clipPoints1, ie, rf.sideNormal1, rf.sideOffset1, rf.i1)
	if np < MaxManifoldPoints {
		return
	}

	np = clipSegmentToLine(clipPoints2, clipPoints1, rf.sideNormal2, rf.sideOffset2, rf.i2)
	if np < MaxManifoldPoints {
		return
	}

	// clipPoints2 now contains the clipped points.
	if primaryAxis.typ == epAxisEdgeA {
		manifold.LocalNormal = rf.normal
		manifold.LocalPoint = rf.v1
	} else {
		manifold.LocalNormal = polygonB.Normals[rf.i1]
		manifold.LocalPoint = polygonB.Vertices[rf.i1]
	}

	pointCount := 0
	for i := 0; i < MaxManifoldPoints; i++ {
		separation := rf.normal.Dot(clipPoints2[i].V.Sub(rf.v1))

		if separation <= collider.radius {
			cp := &manifold.Points[pointCount]

			if primaryAxis.typ == epAxisEdgeA {
				cp.LocalPoint = collider.xf.ApplyT(clipPoints2[i].V)
				cp.ID = clipPoints2[i].ID
			} else {
				cp.LocalPoint = clipPoints2[i].V
				cp.ID.TypeA = clipPoints2[i].ID.TypeB
				cp.ID.TypeB = clipPoints2[i].ID.TypeA
				cp.ID.IndexA = clipPoints2[i].ID.IndexB
				cp.ID.IndexB = clipPoints2[i].ID.IndexA
			}

			pointCount++
		}
	}

	manifold.PointCount = pointCount
}

func (collider *epCollider) computeEdgeSeparation() epAxis {
	var axis epAxis
	axis.typ = epAxisEdgeA
	if collider.front {
		axis.index = 0
	} else {
		axis.index = 1
	}
	axis.separation = maxFloat

	for i := 0; i < collider.polygonB.count; i++ {
		s := collider.normal.Dot(collider.polygonB.vertices[i].Sub(collider.v1))
		if s < axis.separation {
			axis.separation = s
		}
	}

	return axis
}

func (collider *epCollider) computePolygonSeparation() epAxis {
	var axis epAxis
	axis.typ = epAxisUnknown
	axis.index = -1
	axis.separation = -maxFloat

	perp := Vec2{-collider.normal.Y, collider.normal.X}

	for i := 0; i < collider.polygonB.count; i++ {
		n := collider.polygonB.normals[i].Neg()

		s1 := n.Dot(collider.polygonB.vertices[i].Sub(collider.v1))
		s2 := n.Dot(collider.polygonB.vertices[i].Sub(collider.v2))
		s := math.Min(s1, s2)

		if s > collider.radius {
			// No collision.
			axis.typ = epAxisEdgeB
			axis.index = i
			axis.separation = s
			return axis
		}

		// Adjacency.
		if n.Dot(perp) >= 0.0 {
			if n.Sub(collider.upperLimit).Dot(collider.normal) < -AngularSlop {
				continue
			}
		} else {
			if n.Sub(collider.lowerLimit).Dot(collider.normal) < -AngularSlop {
				continue
			}
		}

		if s > axis.separation {
			axis.typ = epAxisEdgeB
			axis.index = i
			axis.separation = s
		}
	}

	return axis
}

// CollideEdgeAndPolygon computes the manifold for an edge and a polygon.
func CollideEdgeAndPolygon(manifold *Manifold, edgeA *EdgeShape, xfA Transform, polygonB *PolygonShape, xfB Transform) {
	var collider epCollider
	collider.collide(manifold, edgeA, xfA, polygonB, xfB)
}

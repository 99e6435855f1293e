package phys2d

// CollideCircles computes the manifold for two circles.
func CollideCircles(manifold *Manifold, circleA *CircleShape, xfA Transform, circleB *CircleShape, xfB Transform) {
	manifold.PointCount = 0

	pA := xfA.Apply(circleA.P)
	pB := xfB.Apply(circleB.P)

	d := pB.Sub(pA)
	distSqr := d.Dot(d)
	radius := circleA.radius + circleB.radius
	if distSqr > radius*radius {
		return
	}

	manifold.Type = ManifoldCircles
	manifold.LocalPoint = circleA.P
	manifold.LocalNormal.SetZero()
	manifold.PointCount = 1

	manifold.Points[0].LocalPoint = circleB.P
	manifold.Points[0].ID.SetKey(0)
}

// CollidePolygonAndCircle computes the manifold for a polygon and a circle.
func CollidePolygonAndCircle(manifold *Manifold, polygonA *PolygonShape, xfA Transform, circleB *CircleShape, xfB Transform) {
	manifold.PointCount = 0

	// Compute the circle position in the frame of the polygon.
	c := xfB.Apply(circleB.P)
	cLocal := xfA.ApplyT(c)

	// Find the min separating edge.
	normalIndex := 0
	separation := -maxFloat
	radius := polygonA.radius + circleB.radius
	vertexCount := polygonA.Count
	vertices := polygonA.Vertices
	normals := polygonA.Normals

	for i := 0; i < vertexCount; i++ {
		s := normals[i].Dot(cLocal.Sub(vertices[i]))

		if s > radius {
			// Early out.
			return
		}

		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	// Vertices that subtend the incident face.
	vertIndex1 := normalIndex
	vertIndex2 := 0
	if vertIndex1+1 < vertexCount {
		vertIndex2 = vertIndex1 + 1
	}

	v1 := vertices[vertIndex1]
	v2 := vertices[vertIndex2]

	// The center is inside the polygon.
	if separation < epsilon {
		manifold.PointCount = 1
		manifold.Type = ManifoldFaceA
		manifold.LocalNormal = normals[normalIndex]
		manifold.LocalPoint = v1.Add(v2).Scale(0.5)
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].ID.SetKey(0)
		return
	}

	// Compute barycentric coordinates.
	u1 := cLocal.Sub(v1).Dot(v2.Sub(v1))
	u2 := cLocal.Sub(v2).Dot(v1.Sub(v2))
	if u1 <= 0.0 {
		if cLocal.DistanceSquaredTo(v1) > radius*radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = ManifoldFaceA
		manifold.LocalNormal = cLocal.Sub(v1)
		manifold.LocalNormal.Normalize()
		manifold.LocalPoint = v1
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].ID.SetKey(0)
	} else if u2 <= 0.0 {
		if cLocal.DistanceSquaredTo(v2) > radius*radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = ManifoldFaceA
		manifold.LocalNormal = cLocal.Sub(v2)
		manifold.LocalNormal.Normalize()
		manifold.LocalPoint = v2
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].ID.SetKey(0)
	} else {
		faceCenter := v1.Add(v2).Scale(0.5)
		s := cLocal.Sub(faceCenter).Dot(normals[vertIndex1])
		if s > radius {
			return
		}

		manifold.PointCount = 1
		manifold.Type = ManifoldFaceA
		manifold.LocalNormal = normals[vertIndex1]
		manifold.LocalPoint = faceCenter
		manifold.Points[0].LocalPoint = circleB.P
		manifold.Points[0].ID.SetKey(0)
	}
}

package phys2d

import "math"

// CircleShape is a solid circle centered at P in the parent body's frame.
type CircleShape struct {
	shapeBase

	// P is the center position.
	P Vec2
}

func MakeCircleShape(center Vec2, radius float64) CircleShape {
	return CircleShape{
		shapeBase: shapeBase{kind: KindCircle, radius: radius},
		P:         center,
	}
}

func NewCircleShape(center Vec2, radius float64) *CircleShape {
	res := MakeCircleShape(center, radius)
	return &res
}

func (shape CircleShape) Clone() Shape {
	clone := shape
	return &clone
}

func (shape CircleShape) ChildCount() int {
	return 1
}

func (shape CircleShape) TestPoint(xf Transform, p Vec2) bool {
	center := xf.P.Add(xf.Q.Apply(shape.P))
	d := p.Sub(center)
	return d.Dot(d) <= shape.radius*shape.radius
}

// RayCast intersects the ray with the circle by solving the quadratic
// |s + a*r| = radius. From "Collision Detection in Interactive 3D
// Environments" section 3.1.2.
func (shape CircleShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	position := xf.P.Add(xf.Q.Apply(shape.P))
	s := input.P1.Sub(position)
	b := s.Dot(s) - shape.radius*shape.radius

	r := input.P2.Sub(input.P1)
	c := s.Dot(r)
	rr := r.Dot(r)
	sigma := c*c - rr*b

	// Negative discriminant or short segment.
	if sigma < 0.0 || rr < epsilon {
		return false
	}

	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = s.Add(r.Scale(a))
		output.Normal.Normalize()
		return true
	}

	return false
}

func (shape CircleShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {
	p := xf.P.Add(xf.Q.Apply(shape.P))
	aabb.LowerBound = Vec2{p.X - shape.radius, p.Y - shape.radius}
	aabb.UpperBound = Vec2{p.X + shape.radius, p.Y + shape.radius}
}

func (shape CircleShape) ComputeMass(massData *MassData, density float64) {
	massData.Mass = density * pi * shape.radius * shape.radius
	massData.Center = shape.P

	// Inertia about the local origin.
	massData.I = massData.Mass * (0.5*shape.radius*shape.radius + shape.P.Dot(shape.P))
}

package phys2d

import "math"

// IsValidFloat reports whether x is neither NaN nor infinite.
func IsValidFloat(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Vec2 is a 2D column vector.
type Vec2 struct {
	X, Y float64
}

func MakeVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v *Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{s * v.X, s * v.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot is the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross is the 2D cross product; it produces a scalar.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Skew returns the vector such that Skew().Dot(w) == Cross(v, w).
func (v Vec2) Skew() Vec2 {
	return Vec2{-v.Y, v.X}
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared avoids the square root of Length where only comparisons are
// needed.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize converts the vector into a unit vector in place and returns the
// original length. Vectors shorter than epsilon are left untouched.
func (v *Vec2) Normalize() float64 {
	length := v.Length()
	if length < epsilon {
		return 0.0
	}
	inv := 1.0 / length
	v.X *= inv
	v.Y *= inv
	return length
}

func (v Vec2) IsValid() bool {
	return IsValidFloat(v.X) && IsValidFloat(v.Y)
}

// Component reads the vector by axis index (0 = X, 1 = Y).
func (v Vec2) Component(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

func (v *Vec2) SetComponent(i int, value float64) {
	if i == 0 {
		v.X = value
	} else {
		v.Y = value
	}
}

func (v Vec2) DistanceTo(w Vec2) float64 {
	return v.Sub(w).Length()
}

func (v Vec2) DistanceSquaredTo(w Vec2) float64 {
	d := v.Sub(w)
	return d.Dot(d)
}

// CrossSV is the cross product of a scalar and a vector; it produces a vector.
func CrossSV(s float64, v Vec2) Vec2 {
	return Vec2{-s * v.Y, s * v.X}
}

// CrossVS is the cross product of a vector and a scalar; it produces a vector.
func CrossVS(v Vec2, s float64) Vec2 {
	return Vec2{s * v.Y, -s * v.X}
}

func MinVec2(a, b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

func MaxVec2(a, b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

func AbsVec2(a Vec2) Vec2 {
	return Vec2{math.Abs(a.X), math.Abs(a.Y)}
}

func ClampVec2(a, low, high Vec2) Vec2 {
	return MaxVec2(low, MinVec2(a, high))
}

func clamp(a, low, high float64) float64 {
	return math.Max(low, math.Min(a, high))
}

// Vec3 is a 2D column vector with 3 elements, used for the combined
// linear+angular constraint rows.
type Vec3 struct {
	X, Y, Z float64
}

func MakeVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v *Vec3) SetZero() {
	v.X = 0.0
	v.Y = 0.0
	v.Z = 0.0
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v.X, s * v.Y, s * v.Z}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Mat22 is a 2-by-2 matrix stored in column-major order.
type Mat22 struct {
	Ex, Ey Vec2
}

func MakeMat22FromColumns(c1, c2 Vec2) Mat22 {
	return Mat22{Ex: c1, Ey: c2}
}

func (m *Mat22) SetIdentity() {
	m.Ex = Vec2{1.0, 0.0}
	m.Ey = Vec2{0.0, 1.0}
}

func (m *Mat22) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
}

// MulVec transforms a vector by the matrix.
func (m Mat22) MulVec(v Vec2) Vec2 {
	return Vec2{
		m.Ex.X*v.X + m.Ey.X*v.Y,
		m.Ex.Y*v.X + m.Ey.Y*v.Y,
	}
}

func (m Mat22) GetInverse() Mat22 {
	a, b, c, d := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}
	return Mat22{
		Ex: Vec2{det * d, -det * c},
		Ey: Vec2{-det * b, det * a},
	}
}

// Solve solves m * x = b. This is more efficient than computing the inverse
// in one-shot cases.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11, a12 := m.Ex.X, m.Ey.X
	a21, a22 := m.Ex.Y, m.Ey.Y
	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}
	return Vec2{
		det * (a22*b.X - a12*b.Y),
		det * (a11*b.Y - a21*b.X),
	}
}

// Mat33 is a 3-by-3 matrix stored in column-major order.
type Mat33 struct {
	Ex, Ey, Ez Vec3
}

func (m *Mat33) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
	m.Ez.SetZero()
}

// Solve33 solves m * x = b for the full 3x3 system.
func (m Mat33) Solve33(b Vec3) Vec3 {
	det := m.Ex.Dot(Cross3(m.Ey, m.Ez))
	if det != 0.0 {
		det = 1.0 / det
	}
	return Vec3{
		det * b.Dot(Cross3(m.Ey, m.Ez)),
		det * m.Ex.Dot(Cross3(b, m.Ez)),
		det * m.Ex.Dot(Cross3(m.Ey, b)),
	}
}

// Solve22 solves m * x = b using only the upper-left 2x2 block.
func (m Mat33) Solve22(b Vec2) Vec2 {
	a11, a12 := m.Ex.X, m.Ey.X
	a21, a22 := m.Ex.Y, m.Ey.Y
	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}
	return Vec2{
		det * (a22*b.X - a12*b.Y),
		det * (a11*b.Y - a21*b.X),
	}
}

// GetInverse22 writes the inverse of the upper-left 2x2 block into out,
// zeroing the remaining entries.
func (m Mat33) GetInverse22(out *Mat33) {
	a, b, c, d := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}
	out.Ex = Vec3{det * d, -det * c, 0.0}
	out.Ey = Vec3{-det * b, det * a, 0.0}
	out.Ez = Vec3{}
}

// GetSymInverse33 writes the inverse of the matrix into out, assuming it is
// symmetric. Returns the zero matrix if singular.
func (m Mat33) GetSymInverse33(out *Mat33) {
	det := m.Ex.Dot(Cross3(m.Ey, m.Ez))
	if det != 0.0 {
		det = 1.0 / det
	}

	a11, a12, a13 := m.Ex.X, m.Ey.X, m.Ez.X
	a22, a23 := m.Ey.Y, m.Ez.Y
	a33 := m.Ez.Z

	out.Ex.X = det * (a22*a33 - a23*a23)
	out.Ex.Y = det * (a13*a23 - a12*a33)
	out.Ex.Z = det * (a12*a23 - a13*a22)

	out.Ey.X = out.Ex.Y
	out.Ey.Y = det * (a11*a33 - a13*a13)
	out.Ey.Z = det * (a13*a12 - a11*a23)

	out.Ez.X = out.Ex.Z
	out.Ez.Y = out.Ey.Z
	out.Ez.Z = det * (a11*a22 - a12*a12)
}

// Rot is a rotation stored as its sine and cosine.
type Rot struct {
	S, C float64
}

// MakeRot initializes a rotation from an angle in radians.
func MakeRot(angle float64) Rot {
	return Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

func (q *Rot) Set(angle float64) {
	q.S = math.Sin(angle)
	q.C = math.Cos(angle)
}

func (q *Rot) SetIdentity() {
	q.S = 0.0
	q.C = 1.0
}

// Angle returns the rotation angle in radians.
func (q Rot) Angle() float64 {
	return math.Atan2(q.S, q.C)
}

func (q Rot) XAxis() Vec2 {
	return Vec2{q.C, q.S}
}

func (q Rot) YAxis() Vec2 {
	return Vec2{-q.S, q.C}
}

// Apply rotates a vector.
func (q Rot) Apply(v Vec2) Vec2 {
	return Vec2{
		q.C*v.X - q.S*v.Y,
		q.S*v.X + q.C*v.Y,
	}
}

// ApplyT inverse-rotates a vector.
func (q Rot) ApplyT(v Vec2) Vec2 {
	return Vec2{
		q.C*v.X + q.S*v.Y,
		-q.S*v.X + q.C*v.Y,
	}
}

// MulRot composes two rotations: q * r.
func MulRot(q, r Rot) Rot {
	return Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

// MulTRot composes the transpose of q with r: qT * r.
func MulTRot(q, r Rot) Rot {
	return Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

// Transform contains a translation and a rotation. It represents the
// position and orientation of a rigid frame.
type Transform struct {
	P Vec2
	Q Rot
}

func MakeTransform(position Vec2, rotation Rot) Transform {
	return Transform{P: position, Q: rotation}
}

func (t *Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

func (t *Transform) Set(position Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

// Apply transforms a local point to the parent frame.
func (t Transform) Apply(v Vec2) Vec2 {
	return Vec2{
		t.Q.C*v.X - t.Q.S*v.Y + t.P.X,
		t.Q.S*v.X + t.Q.C*v.Y + t.P.Y,
	}
}

// ApplyT inverse-transforms a point from the parent frame into the local one.
func (t Transform) ApplyT(v Vec2) Vec2 {
	px := v.X - t.P.X
	py := v.Y - t.P.Y
	return Vec2{
		t.Q.C*px + t.Q.S*py,
		-t.Q.S*px + t.Q.C*py,
	}
}

func MulTransforms(a, b Transform) Transform {
	return Transform{
		P: a.Q.Apply(b.P).Add(a.P),
		Q: MulRot(a.Q, b.Q),
	}
}

func MulTTransforms(a, b Transform) Transform {
	return Transform{
		P: a.Q.ApplyT(b.P.Sub(a.P)),
		Q: MulTRot(a.Q, b.Q),
	}
}

// Sweep describes the motion of a body/shape for TOI computation. Shapes are
// defined with respect to the body origin, which may not coincide with the
// center of mass; to support dynamics the center of mass position is
// interpolated instead.
type Sweep struct {
	LocalCenter Vec2    // local center of mass position
	C0, C       Vec2    // center world positions
	A0, A       float64 // world angles

	// Fraction of the current time step in the range [0,1].
	// C0 and A0 are the positions at Alpha0.
	Alpha0 float64
}

// GetTransform interpolates the transform at the given time fraction, where
// beta is a factor in [0,1] indicating the fraction of the current step.
func (sweep Sweep) GetTransform(xf *Transform, beta float64) {
	xf.P = sweep.C0.Scale(1.0 - beta).Add(sweep.C.Scale(beta))
	xf.Q.Set((1.0-beta)*sweep.A0 + beta*sweep.A)

	// Shift to origin.
	xf.P = xf.P.Sub(xf.Q.Apply(sweep.LocalCenter))
}

// Advance moves the sweep forward, yielding a new initial state.
func (sweep *Sweep) Advance(alpha float64) {
	assert(sweep.Alpha0 < 1.0)
	beta := (alpha - sweep.Alpha0) / (1.0 - sweep.Alpha0)
	sweep.C0 = sweep.C0.Add(sweep.C.Sub(sweep.C0).Scale(beta))
	sweep.A0 += beta * (sweep.A - sweep.A0)
	sweep.Alpha0 = alpha
}

// Normalize brings the sweep angles back into the -pi..pi range.
func (sweep *Sweep) Normalize() {
	twoPi := 2.0 * pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}

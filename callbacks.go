package phys2d

// ContactImpulse reports solver impulses. Impulses are used instead of
// forces because sub-step forces may approach infinity for rigid body
// collisions. They match one-to-one with the manifold points.
type ContactImpulse struct {
	NormalImpulses  [MaxManifoldPoints]float64
	TangentImpulses [MaxManifoldPoints]float64
	Count           int
}

// ContactListener receives contact lifecycle events.
type ContactListener interface {
	// BeginContact is called when two fixtures begin to touch.
	BeginContact(contact Contact)

	// EndContact is called when two fixtures cease to touch.
	EndContact(contact Contact)

	// PreSolve is called after a contact is updated, before it goes to the
	// solver. The contact manifold may be modified (e.g. the contact
	// disabled). A copy of the old manifold is provided so changes can be
	// detected. Called only for awake bodies, even when the number of
	// contact points is zero, but never for sensors. If the point count is
	// set to zero, EndContact will not fire, though BeginContact may fire
	// again the next step.
	PreSolve(contact Contact, oldManifold *Manifold)

	// PostSolve lets you inspect a contact after the solver has finished,
	// which is useful for inspecting impulses. Called only for contacts
	// that are touching, solid, and awake.
	PostSolve(contact Contact, impulse *ContactImpulse)
}

// ContactFilterer decides whether contact calculations should be performed
// between two fixtures.
type ContactFilterer interface {
	ShouldCollide(fixtureA, fixtureB *Fixture) bool
}

// ContactFilter is the default filter backed by the fixtures' Filter data.
type ContactFilter struct{}

// ShouldCollide returns true if contact calculations should be performed
// between these two fixtures. Custom filters may build on this.
func (cf *ContactFilter) ShouldCollide(fixtureA, fixtureB *Fixture) bool {
	filterA := fixtureA.GetFilterData()
	filterB := fixtureB.GetFilterData()

	if filterA.GroupIndex == filterB.GroupIndex && filterA.GroupIndex != 0 {
		return filterA.GroupIndex > 0
	}

	return filterA.MaskBits&filterB.CategoryBits != 0 &&
		filterA.CategoryBits&filterB.MaskBits != 0
}

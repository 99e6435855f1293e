package phys2d_test

import (
	"math"
	"testing"

	"github.com/phys2d/phys2d"
)

func identityAt(x, y float64) phys2d.Transform {
	return phys2d.MakeTransform(phys2d.MakeVec2(x, y), phys2d.MakeRot(0.0))
}

func TestDistanceSeparatedCircles(t *testing.T) {
	circleA := phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 1.0)
	circleB := phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 1.0)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(circleA, 0)
	input.ProxyB.Set(circleB, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(10.0, 0.0)
	input.UseRadii = true

	var cache phys2d.SimplexCache
	var output phys2d.DistanceOutput
	phys2d.Distance(&output, &cache, &input)

	if math.Abs(output.Distance-8.0) > 1e-12 {
		t.Errorf("distance = %v, want 8", output.Distance)
	}
	if output.PointA.DistanceTo(phys2d.MakeVec2(1.0, 0.0)) > 1e-12 {
		t.Errorf("pointA = %v, want (1, 0)", output.PointA)
	}
	if output.PointB.DistanceTo(phys2d.MakeVec2(9.0, 0.0)) > 1e-12 {
		t.Errorf("pointB = %v, want (9, 0)", output.PointB)
	}
	if output.Term != phys2d.TermDuplicate {
		t.Errorf("term = %v, want %v", output.Term, phys2d.TermDuplicate)
	}
}

func TestDistanceSeparatedBoxes(t *testing.T) {
	boxA := phys2d.NewPolygonShape()
	boxA.SetAsBox(0.5, 0.5)
	boxB := phys2d.NewPolygonShape()
	boxB.SetAsBox(0.5, 0.5)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(boxA, 0)
	input.ProxyB.Set(boxB, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(3.0, 0.0)
	input.UseRadii = false

	var cache phys2d.SimplexCache
	var output phys2d.DistanceOutput
	phys2d.Distance(&output, &cache, &input)

	if math.Abs(output.Distance-2.0) > 1e-12 {
		t.Errorf("distance = %v, want 2", output.Distance)
	}
	if output.Iterations == 0 {
		t.Error("expected at least one iteration")
	}
}

func TestDistanceDeepOverlap(t *testing.T) {
	boxA := phys2d.NewPolygonShape()
	boxA.SetAsBox(2.0, 2.0)
	boxB := phys2d.NewPolygonShape()
	boxB.SetAsBox(2.0, 2.0)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(boxA, 0)
	input.ProxyB.Set(boxB, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(0.5, 0.1)
	input.UseRadii = false

	var cache phys2d.SimplexCache
	var output phys2d.DistanceOutput
	phys2d.Distance(&output, &cache, &input)

	if output.Distance != 0.0 {
		t.Errorf("distance = %v, want 0", output.Distance)
	}
	if output.Term != phys2d.TermEnclosed {
		t.Errorf("term = %v, want %v", output.Term, phys2d.TermEnclosed)
	}
	if output.PointA != output.PointB {
		t.Errorf("witness points differ on overlap: %v vs %v", output.PointA, output.PointB)
	}
}

func TestDistanceOverlapWithRadii(t *testing.T) {
	circleA := phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 1.0)
	circleB := phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 1.0)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(circleA, 0)
	input.ProxyB.Set(circleB, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(1.5, 0.0)
	input.UseRadii = true

	var cache phys2d.SimplexCache
	var output phys2d.DistanceOutput
	phys2d.Distance(&output, &cache, &input)

	// The cores are 1.5 apart but the radii overlap, so the result
	// collapses to a single midpoint.
	if output.Distance != 0.0 {
		t.Errorf("distance = %v, want 0", output.Distance)
	}
	if output.PointA != output.PointB {
		t.Errorf("witness points differ on overlap: %v vs %v", output.PointA, output.PointB)
	}
}

func TestDistanceCacheReuse(t *testing.T) {
	boxA := phys2d.NewPolygonShape()
	boxA.SetAsBox(1.0, 1.0)
	boxB := phys2d.NewPolygonShape()
	boxB.SetAsBox(0.5, 0.5)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(boxA, 0)
	input.ProxyB.Set(boxB, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(4.0, 0.5)
	input.UseRadii = false

	var cache phys2d.SimplexCache
	var cold phys2d.DistanceOutput
	phys2d.Distance(&cold, &cache, &input)

	if cache.Count == 0 {
		t.Fatal("expected a populated cache after the first query")
	}

	// Warm query from the cache must agree with the cold query.
	var warm phys2d.DistanceOutput
	phys2d.Distance(&warm, &cache, &input)
	if warm.Distance != cold.Distance {
		t.Errorf("warm distance = %v, cold = %v", warm.Distance, cold.Distance)
	}

	// A cache whose metric no longer matches its simplex is flushed, not
	// trusted; the result must still agree.
	cache.Metric = 1e-12
	var flushed phys2d.DistanceOutput
	phys2d.Distance(&flushed, &cache, &input)
	if flushed.Distance != cold.Distance {
		t.Errorf("flushed distance = %v, cold = %v", flushed.Distance, cold.Distance)
	}
}

func TestDistanceDeterminism(t *testing.T) {
	edge := phys2d.NewEdgeShape(phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))
	circle := phys2d.NewCircleShape(phys2d.MakeVec2(0.0, 0.0), 0.25)

	input := phys2d.DistanceInput{}
	input.ProxyA.Set(edge, 0)
	input.ProxyB.Set(circle, 0)
	input.TransformA = identityAt(0.0, 0.0)
	input.TransformB = identityAt(0.3, 2.0)
	input.UseRadii = true

	var first phys2d.DistanceOutput
	{
		var cache phys2d.SimplexCache
		phys2d.Distance(&first, &cache, &input)
	}

	for i := 0; i < 10; i++ {
		var cache phys2d.SimplexCache
		var output phys2d.DistanceOutput
		phys2d.Distance(&output, &cache, &input)
		if output != first {
			t.Fatalf("run %d diverged: %+v vs %+v", i, output, first)
		}
	}
}

func TestShapesOverlap(t *testing.T) {
	boxA := phys2d.NewPolygonShape()
	boxA.SetAsBox(1.0, 1.0)
	boxB := phys2d.NewPolygonShape()
	boxB.SetAsBox(1.0, 1.0)

	xfA := identityAt(0.0, 0.0)

	if !phys2d.ShapesOverlap(boxA, 0, boxB, 0, xfA, identityAt(1.5, 0.0)) {
		t.Error("expected overlap at offset 1.5")
	}
	if phys2d.ShapesOverlap(boxA, 0, boxB, 0, xfA, identityAt(5.0, 0.0)) {
		t.Error("expected no overlap at offset 5")
	}
}

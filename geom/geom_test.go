package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNormalizeAngle(t *testing.T) {
	test.That(t, NormalizeAngle(0), test.ShouldAlmostEqual, 0)
	test.That(t, NormalizeAngle(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(2*math.Pi+0.1), test.ShouldAlmostEqual, 0.1)
}

func TestWorkspaceContains(t *testing.T) {
	w := Workspace{XMin: -2, XMax: 12, YMin: -2, YMax: 2}
	test.That(t, w.Contains(0, 0), test.ShouldBeTrue)
	test.That(t, w.Contains(12, 2), test.ShouldBeTrue)
	test.That(t, w.Contains(12.1, 0), test.ShouldBeFalse)
	test.That(t, w.Contains(0, -2.1), test.ShouldBeFalse)
}

func TestPolygonToSegmentsNoImplicitClosure(t *testing.T) {
	verts := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	segs := PolygonToSegments(verts)
	test.That(t, len(segs), test.ShouldEqual, len(verts)-1)
	test.That(t, segs[0].A, test.ShouldResemble, verts[0])
	test.That(t, segs[len(segs)-1].B, test.ShouldResemble, verts[len(verts)-1])
}

func TestOrientedRectIntersectsSegment(t *testing.T) {
	rect := OrientedRect{CX: 0, CY: 0, Phi: 0, Length: 4, Width: 2}

	// Segment passing straight through the rectangle.
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: -5, Y: 0}, B: r2.Point{X: 5, Y: 0}}), test.ShouldBeTrue)

	// Segment far away.
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: 10, Y: 10}, B: r2.Point{X: 20, Y: 20}}), test.ShouldBeFalse)

	// Segment just grazing an edge.
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: 0, Y: 1}, B: r2.Point{X: 3, Y: 1}}), test.ShouldBeTrue)

	// Segment parallel and outside.
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: 0, Y: 2}, B: r2.Point{X: 3, Y: 2}}), test.ShouldBeFalse)
}

func TestOrientedRectIntersectsSegmentRotated(t *testing.T) {
	rect := OrientedRect{CX: 0, CY: 0, Phi: math.Pi / 2, Length: 4, Width: 2}
	// Rotated 90deg: the long axis is now along y, so the rect occupies
	// x in [-1,1], y in [-2,2]. A segment along the y axis crosses it; a
	// segment along x starting at x=5 misses it.
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: 0, Y: -5}, B: r2.Point{X: 0, Y: 5}}), test.ShouldBeTrue)
	test.That(t, rect.IntersectsSegment(Segment{A: r2.Point{X: 5, Y: 0}, B: r2.Point{X: 10, Y: 0}}), test.ShouldBeFalse)
}

func TestFootprintAt(t *testing.T) {
	p := Pose{X: 1, Y: 2, Phi: 0}
	fp := FootprintAt(p, 4, 2, 1)
	test.That(t, fp.CX, test.ShouldAlmostEqual, 2)
	test.That(t, fp.CY, test.ShouldAlmostEqual, 2)
}

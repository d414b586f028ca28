// Package geom provides the 2D pose, workspace and oriented-rectangle
// collision primitives the coarse trajectory generator is built on. It
// generalizes the teacher's 3D box-vs-box separating-axis test
// (spatialmath's box.go/sat_generic.go) down to the 2D rectangle-vs-segment
// case an open-space vehicle footprint check actually needs.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Pose is a world-frame position and heading. Phi is normalized to (-pi, pi].
type Pose struct {
	X, Y, Phi float64
}

// NormalizeAngle wraps phi into (-pi, pi].
func NormalizeAngle(phi float64) float64 {
	a := math.Mod(phi+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Point returns the pose's location as an r2.Point.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Workspace is an axis-aligned rectangular planning bound.
type Workspace struct {
	XMin, XMax, YMin, YMax float64
}

// Contains reports whether (x, y) lies within the workspace, inclusive of bounds.
func (w Workspace) Contains(x, y float64) bool {
	return x >= w.XMin && x <= w.XMax && y >= w.YMin && y <= w.YMax
}

// Segment is a directed line segment between two points, in world coordinates.
type Segment struct {
	A, B r2.Point
}

// PolygonToSegments converts an ordered vertex list into N-1 directed
// segments connecting consecutive vertices. It does not implicitly close
// the polygon: a 4-vertex rectangle yields 3 segments unless the caller
// repeats the first vertex at the end, matching the source contract in
// spec.md section 3.
func PolygonToSegments(vertices []r2.Point) []Segment {
	if len(vertices) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(vertices)-1)
	for i := 0; i+1 < len(vertices); i++ {
		segs = append(segs, Segment{A: vertices[i], B: vertices[i+1]})
	}
	return segs
}

// OrientedRect is a vehicle-footprint rectangle centered at (cx, cy) and
// rotated by phi, with the given full length (along heading) and width
// (across heading).
type OrientedRect struct {
	CX, CY, Phi   float64
	Length, Width float64
}

// corners returns the four corners of the rectangle in world coordinates,
// in order, starting from the +x/+y corner in the rectangle's own frame.
func (r OrientedRect) corners() [4]r2.Point {
	hl, hw := r.Length/2, r.Width/2
	cosP, sinP := math.Cos(r.Phi), math.Sin(r.Phi)
	local := [4][2]float64{
		{hl, hw}, {hl, -hw}, {-hl, -hw}, {-hl, hw},
	}
	var out [4]r2.Point
	for i, l := range local {
		out[i] = r2.Point{
			X: r.CX + l[0]*cosP - l[1]*sinP,
			Y: r.CY + l[0]*sinP + l[1]*cosP,
		}
	}
	return out
}

// axes returns the rectangle's two unit separating axes (its length and
// width directions).
func (r OrientedRect) axes() [2]r2.Point {
	cosP, sinP := math.Cos(r.Phi), math.Sin(r.Phi)
	return [2]r2.Point{
		{X: cosP, Y: sinP},
		{X: -sinP, Y: cosP},
	}
}

func dot(a, b r2.Point) float64 { return a.X*b.X + a.Y*b.Y }

func projectPoints(axis r2.Point, pts []r2.Point) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := dot(axis, p)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// IntersectsSegment reports whether the oriented rectangle overlaps the
// given line segment, using the separating axis theorem: if any of the
// rectangle's two face normals, or the segment's own normal, separates
// the two shapes, they do not intersect.
func (r OrientedRect) IntersectsSegment(s Segment) bool {
	corners := r.corners()
	cornerSlice := corners[:]
	segPts := []r2.Point{s.A, s.B}

	rectAxes := r.axes()
	segDir := r2.Point{X: s.B.X - s.A.X, Y: s.B.Y - s.A.Y}
	segNormal := r2.Point{X: -segDir.Y, Y: segDir.X}

	axesToTest := [3]r2.Point{rectAxes[0], rectAxes[1], segNormal}
	for _, axis := range axesToTest {
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		rMin, rMax := projectPoints(axis, cornerSlice)
		sMin, sMax := projectPoints(axis, segPts)
		if rMax < sMin || sMax < rMin {
			return false
		}
	}
	return true
}

// IntersectsAnySegment reports whether the footprint overlaps any of the segments.
func (r OrientedRect) IntersectsAnySegment(segs []Segment) bool {
	for _, s := range segs {
		if r.IntersectsSegment(s) {
			return true
		}
	}
	return false
}

// FootprintCenterOffset computes the offset from the rear-axle reference
// point to the geometric center of the vehicle footprint, given the
// front/back/left/right edge-to-axle distances, per spec.md section 4.4.
// Only the offset along the heading is returned: left and right are not
// used, so the footprint is taken as laterally centered on the reference.
func FootprintCenterOffset(front, back, left, right float64) float64 {
	return (front - back) / 2
}

// FootprintAt returns the oriented vehicle footprint rectangle for a pose,
// given the vehicle's overall length/width and the center offset from the
// rear-axle reference pose along the heading direction.
func FootprintAt(p Pose, length, width, centerOffset float64) OrientedRect {
	return OrientedRect{
		CX:     p.X + centerOffset*math.Cos(p.Phi),
		CY:     p.Y + centerOffset*math.Sin(p.Phi),
		Phi:    p.Phi,
		Length: length,
		Width:  width,
	}
}

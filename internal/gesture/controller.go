// Package gesture turns raw pointer events into adjustment deltas: a
// one-point drag translates, a two-point drag pinch-zooms by distance
// ratio and twists by angle delta. The controller only measures; clamping
// and state writes live in the targets.
package gesture

import (
	"math"

	"dressup-engine/internal/mathutil"
)

// Point is a pointer position in viewport pixels.
type Point struct {
	X, Y float64
}

// Phase is the controller's interaction state.
type Phase int

const (
	Idle Phase = iota
	DragOne
	DragTwo
)

// Deltas is accumulated gesture output relative to the gesture start:
// pixel translation, multiplicative scale, additive rotation in degrees.
// The identity is {0, 0, 1, 0}.
type Deltas struct {
	OffsetX     float64
	OffsetY     float64
	ScaleRatio  float64
	RotationDeg float64
}

func identity() Deltas { return Deltas{ScaleRatio: 1} }

// compose stacks e on top of d. All components commute, which is what
// makes mid-gesture re-baselining safe.
func (d Deltas) compose(e Deltas) Deltas {
	return Deltas{
		OffsetX:     d.OffsetX + e.OffsetX,
		OffsetY:     d.OffsetY + e.OffsetY,
		ScaleRatio:  d.ScaleRatio * e.ScaleRatio,
		RotationDeg: d.RotationDeg + e.RotationDeg,
	}
}

func (d Deltas) invert() Deltas {
	s := d.ScaleRatio
	if s == 0 {
		s = 1
	}
	return Deltas{
		OffsetX:     -d.OffsetX,
		OffsetY:     -d.OffsetY,
		ScaleRatio:  1 / s,
		RotationDeg: -d.RotationDeg,
	}
}

// CommitPolicy decides when gesture output reaches the target.
type CommitPolicy int

const (
	// OnConfirm accumulates deltas until Commit, so a long drag costs one
	// state write instead of one per move event.
	OnConfirm CommitPolicy = iota
	// Immediate writes every move through as it happens.
	Immediate
)

// Target consumes gesture deltas. Implementations decide what they mean
// (doll transform, garment adjustment) and clamp there.
type Target interface {
	ApplyDeltas(d Deltas)
}

type pointer struct {
	id int
	at Point
}

// Controller is the drag state machine. It tracks at most two pointers;
// transitions between one- and two-point phases re-baseline the start
// references so the subject never jumps when a finger lands or lifts.
// Not safe for concurrent use; pointer events arrive on one loop.
type Controller struct {
	target Target
	policy CommitPolicy

	phase  Phase
	points []pointer

	startCentroid Point
	startDist     float64
	startAngle    float64

	done    Deltas // folded segments since the last commit or cancel
	live    Deltas // current segment, relative to the baseline
	applied Deltas // what Immediate already wrote through
}

func NewController(t Target, policy CommitPolicy) *Controller {
	return &Controller{
		target:  t,
		policy:  policy,
		done:    identity(),
		live:    identity(),
		applied: identity(),
	}
}

func (c *Controller) Phase() Phase { return c.phase }

// Down starts tracking a pointer. A third concurrent pointer is ignored;
// a repeated down for a tracked id is treated as a move.
func (c *Controller) Down(id int, at Point) {
	if i := c.find(id); i >= 0 {
		c.Move(id, at)
		return
	}
	if len(c.points) >= 2 {
		return
	}
	c.points = append(c.points, pointer{id: id, at: at})
	c.rebaseline()
}

// Move updates a tracked pointer and remeasures the live segment.
func (c *Controller) Move(id int, at Point) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.points[i].at = at
	c.refresh()
}

// Up releases a pointer. The remaining layout re-baselines; with no
// pointers left the controller idles, keeping uncommitted deltas so the
// user can stack several drags before confirming.
func (c *Controller) Up(id int) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.points = append(c.points[:i], c.points[i+1:]...)
	c.rebaseline()
}

// Pending returns the accumulated, not-yet-committed deltas.
func (c *Controller) Pending() Deltas {
	return c.done.compose(c.live)
}

// Commit flushes pending deltas to the target and resets accumulation.
// Under Immediate policy the target is already current, so only the
// residue since the last move (normally nothing) is written.
func (c *Controller) Commit() {
	c.writeThrough()
	c.reset()
}

// Cancel discards pending deltas. Under Immediate policy it writes the
// inverse of what already went through; clamping in the target may make
// that unwind inexact, which is why OnConfirm is the default pairing.
func (c *Controller) Cancel() {
	if c.applied != identity() {
		c.target.ApplyDeltas(c.applied.invert())
	}
	c.reset()
}

// rebaseline folds the live segment into done and restarts measurement
// from the current pointer layout.
func (c *Controller) rebaseline() {
	c.done = c.done.compose(c.live)
	c.live = identity()
	c.measure()
}

// measure snapshots the start references for the current pointer layout.
func (c *Controller) measure() {
	switch len(c.points) {
	case 0:
		c.phase = Idle
	case 1:
		c.phase = DragOne
		c.startCentroid = c.points[0].at
	default:
		c.phase = DragTwo
		c.startCentroid = c.centroid()
		c.startDist = c.span()
		c.startAngle = c.angle()
	}
}

func (c *Controller) refresh() {
	switch c.phase {
	case DragOne:
		p := c.points[0].at
		c.live = Deltas{
			OffsetX:    p.X - c.startCentroid.X,
			OffsetY:    p.Y - c.startCentroid.Y,
			ScaleRatio: 1,
		}
	case DragTwo:
		ctr := c.centroid()
		ratio := 1.0
		if c.startDist > 0 {
			ratio = c.span() / c.startDist
		}
		c.live = Deltas{
			OffsetX:     ctr.X - c.startCentroid.X,
			OffsetY:     ctr.Y - c.startCentroid.Y,
			ScaleRatio:  ratio,
			RotationDeg: mathutil.AngleDelta(c.startAngle, c.angle()),
		}
	default:
		return
	}
	if c.policy == Immediate {
		c.writeThrough()
	}
}

func (c *Controller) writeThrough() {
	cur := c.done.compose(c.live)
	if cur == c.applied {
		return
	}
	c.target.ApplyDeltas(c.applied.invert().compose(cur))
	c.applied = cur
}

func (c *Controller) reset() {
	c.done, c.live, c.applied = identity(), identity(), identity()
	c.measure()
}

func (c *Controller) find(id int) int {
	for i, p := range c.points {
		if p.id == id {
			return i
		}
	}
	return -1
}

func (c *Controller) centroid() Point {
	var ctr Point
	for _, p := range c.points {
		ctr.X += p.at.X
		ctr.Y += p.at.Y
	}
	n := float64(len(c.points))
	return Point{X: ctr.X / n, Y: ctr.Y / n}
}

func (c *Controller) span() float64 {
	a, b := c.points[0].at, c.points[1].at
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// angle is the two-point segment's direction in degrees, clockwise in
// y-down screen coordinates.
func (c *Controller) angle() float64 {
	a, b := c.points[0].at, c.points[1].at
	return mathutil.Rad2Deg(math.Atan2(b.Y-a.Y, b.X-a.X))
}

package catware

import (
	"math"
	"strconv"
)

// DefaultResolution is the number of samples in a plot.
const DefaultResolution = 100

// Default viewport bounds, used until the caller reports a viewport.
const (
	DefaultLo = -10
	DefaultHi = 10
)

// PlotVar is the variable bound to each sample's abscissa.
const PlotVar = "x"

// Point is one sample of the plot target.
type Point struct {
	X, Y float64
}

// plotter holds the plot target and the last successful sampling of it.
type plotter struct {
	target *Expr
	points []Point
	res    int
	lo, hi float64
}

// retarget sets the plot target to a call's single argument.
func (p *plotter) retarget(arg *node) {
	names := make(map[string]bool)
	arg.left.collect(names)
	p.target = (&parsectx{names: names}).expr(arg.left, arg.src)
}

// sample evaluates the target at p.res evenly spaced points starting at lo.
// The sampled points replace the old ones only if every evaluation succeeds.
func (p *plotter) sample(s *Store, lo, hi float64) error {
	pts := make([]Point, 0, p.res)
	// User functions get their own scopes, so one map serves every sample.
	vars := map[string]float64{PlotVar: 0}
	sc := scope{store: s, vars: vars}
	for i := 0; i < p.res; i++ {
		x := lo + (hi-lo)*float64(i)/float64(p.res)
		vars[PlotVar] = x
		y, err := p.target.n.eval(&sc)
		if err != nil {
			return err
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	p.points = pts
	return nil
}

// NotifyViewport records a new visible x range and resamples the plot target
// over it. If there is no plot target, only the range is recorded. If sampling
// fails, the previous points are kept. A range whose bounds are not finite or
// not increasing, or whose width overflows, fails with a *ViewportError and
// changes nothing.
func (c *Calc) NotifyViewport(lo, hi float64) error {
	if !viewable(lo, hi) {
		return &ViewportError{Lo: lo, Hi: hi}
	}
	c.plot.lo, c.plot.hi = lo, hi
	if c.plot.target == nil {
		return nil
	}
	return c.plot.sample(c.store, lo, hi)
}

func viewable(lo, hi float64) bool {
	return !math.IsNaN(lo) && !math.IsInf(lo, 0) && !math.IsNaN(hi) && !math.IsInf(hi, 0) && lo < hi && !math.IsInf(hi-lo, 0)
}

// Points returns a copy of the points from the last successful sampling pass.
// The points are ordered by increasing x.
func (c *Calc) Points() []Point {
	return append([]Point(nil), c.plot.points...)
}

// PlotTarget returns the plot target, or nil if none has been set.
func (c *Calc) PlotTarget() *Expr {
	return c.plot.target
}

// Viewport returns the current visible x range.
func (c *Calc) Viewport() (lo, hi float64) {
	return c.plot.lo, c.plot.hi
}

// ViewportError is an error from reporting an unusable viewport.
type ViewportError struct {
	Lo, Hi float64
}

func (err *ViewportError) Error() string {
	return "invalid viewport [" + strconv.FormatFloat(err.Lo, 'g', -1, 64) + ", " + strconv.FormatFloat(err.Hi, 'g', -1, 64) + "]"
}

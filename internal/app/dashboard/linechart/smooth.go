package linechart

import "math"

type point struct{ x, y float64 }

// controlPoints returns the Bézier handles around mid. The handle lengths
// are split by the distances to the neighbours and scaled by tension.
func controlPoints(prev, mid, next point, tension float64) (before, after point) {
	d01 := math.Hypot(mid.x-prev.x, mid.y-prev.y)
	d12 := math.Hypot(next.x-mid.x, next.y-mid.y)

	s01 := d01 / (d01 + d12)
	s12 := d12 / (d01 + d12)
	if math.IsNaN(s01) {
		s01 = 0
	}
	if math.IsNaN(s12) {
		s12 = 0
	}

	fa := tension * s01
	fb := tension * s12
	before = point{x: mid.x - fa*(next.x-prev.x), y: mid.y - fa*(next.y-prev.y)}
	after = point{x: mid.x + fb*(next.x-prev.x), y: mid.y + fb*(next.y-prev.y)}
	return before, after
}

// Smooth interpolates the polyline (xs, ys) with cubic Bézier segments and
// returns samples points per segment. Every input point is kept.
func Smooth(xs, ys []float64, tension float64, samples int) ([]float64, []float64) {
	n := len(xs)
	if n < 3 || len(ys) != n || tension <= 0 || samples < 1 {
		return append([]float64(nil), xs...), append([]float64(nil), ys...)
	}

	// Handles are computed in a normalized space so the curve does not
	// depend on the magnitude of the values.
	lo, hi := ys[0], ys[0]
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	yScale := hi - lo
	if yScale == 0 {
		yScale = 1
	}
	xScale := xs[n-1] - xs[0]
	if xScale == 0 {
		xScale = 1
	}

	pts := make([]point, n)
	for i := range pts {
		pts[i] = point{x: (xs[i] - xs[0]) / xScale, y: (ys[i] - lo) / yScale}
	}

	before := make([]point, n)
	after := make([]point, n)
	for i := range pts {
		prev, next := pts[i], pts[i]
		if i > 0 {
			prev = pts[i-1]
		}
		if i < n-1 {
			next = pts[i+1]
		}
		before[i], after[i] = controlPoints(prev, pts[i], next, tension)
	}

	outX := make([]float64, 0, (n-1)*samples+1)
	outY := make([]float64, 0, (n-1)*samples+1)
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := pts[i], after[i], before[i+1], pts[i+1]
		for k := 0; k < samples; k++ {
			t := float64(k) / float64(samples)
			p := bezier(p0, p1, p2, p3, t)
			outX = append(outX, xs[0]+p.x*xScale)
			outY = append(outY, lo+p.y*yScale)
		}
	}
	outX = append(outX, xs[n-1])
	outY = append(outY, ys[n-1])
	return outX, outY
}

func bezier(p0, p1, p2, p3 point, t float64) point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return point{
		x: a*p0.x + b*p1.x + c*p2.x + d*p3.x,
		y: a*p0.y + b*p1.y + c*p2.y + d*p3.y,
	}
}

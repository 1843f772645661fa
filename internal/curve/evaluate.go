package curve

import (
	"math"
	"sort"
)

// Evaluate returns the curve value at x.
//
// With Clip set, x is clamped to [0,1] and values outside the point range
// hold the nearest endpoint. Without it the curve extends along the
// boundary tangents.
func (m *Mapping) Evaluate(x float64) float64 {
	pts := m.Points
	switch len(pts) {
	case 0:
		return x
	case 1:
		return pts[0].Y
	}

	if m.Clip {
		x = min(max(x, domainMin), domainMax)
	}

	tin, tout := tangents(pts)
	first, last := 0, len(pts)-1

	if x <= pts[first].X {
		if m.Clip {
			return pts[first].Y
		}
		return pts[first].Y + tin[first]*(x-pts[first].X)
	}
	if x >= pts[last].X {
		if m.Clip {
			return pts[last].Y
		}
		return pts[last].Y + tout[last]*(x-pts[last].X)
	}

	// First point strictly right of x; the segment is [i-1, i].
	i := sort.Search(len(pts), func(k int) bool { return pts[k].X > x })
	p0, p1 := pts[i-1], pts[i]
	h := p1.X - p0.X
	if h < segmentEpsilon {
		return p1.Y
	}
	t := (x - p0.X) / h

	if p0.Handle == HandleVector && p1.Handle == HandleVector {
		return p0.Y + (p1.Y-p0.Y)*t
	}
	return hermite(p0.Y, p1.Y, tout[i-1]*h, tin[i]*h, t)
}

// Sample evaluates the curve at n evenly spaced inputs over [0,1].
func (m *Mapping) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = m.Evaluate(domainMin)
		return out
	}
	step := (domainMax - domainMin) / float64(n-1)
	for k := range out {
		out[k] = m.Evaluate(domainMin + float64(k)*step)
	}
	return out
}

// hermite evaluates the cubic Hermite segment from y0 to y1 with scaled end
// tangents m0 and m1 at t in [0,1].
// Uses the formula: y = ((a*t + b)*t + c)*t + d
func hermite(y0, y1, m0, m1, t float64) float64 {
	a := hermiteTwo*(y0-y1) + m0 + m1
	b := hermiteThree*(y1-y0) - hermiteTwo*m0 - m1
	c := m0
	d := y0
	return ((a*t+b)*t+c)*t + d
}

// tangents returns the incoming and outgoing slope at each point.
func tangents(pts []Point) (tin, tout []float64) {
	n := len(pts)
	secant := make([]float64, n-1)
	width := make([]float64, n-1)
	for k := range secant {
		width[k] = pts[k+1].X - pts[k].X
		if width[k] >= segmentEpsilon {
			secant[k] = (pts[k+1].Y - pts[k].Y) / width[k]
		}
	}

	tin = make([]float64, n)
	tout = make([]float64, n)
	for k, p := range pts {
		switch {
		case k == 0:
			tin[k], tout[k] = secant[0], secant[0]
		case k == n-1:
			tin[k], tout[k] = secant[n-2], secant[n-2]
		case p.Handle == HandleVector:
			tin[k], tout[k] = secant[k-1], secant[k]
		default:
			s := smoothTangent(secant[k-1], secant[k], width[k-1], width[k])
			if p.Handle == HandleAutoClamped {
				s = clampTangent(s, secant[k-1], secant[k])
			}
			tin[k], tout[k] = s, s
		}
	}
	return tin, tout
}

// smoothTangent is the three-point derivative estimate weighted by the
// neighbouring segment widths.
func smoothTangent(dPrev, dNext, hPrev, hNext float64) float64 {
	if hPrev+hNext < segmentEpsilon {
		return 0
	}
	return (hNext*dPrev + hPrev*dNext) / (hPrev + hNext)
}

// clampTangent limits a tangent so neither adjacent segment overshoots
// (Fritsch–Carlson). Local extrema get a flat tangent.
func clampTangent(s, dPrev, dNext float64) float64 {
	if dPrev*dNext <= 0 {
		return 0
	}
	limit := fritschCarlsonLimit * min(math.Abs(dPrev), math.Abs(dNext))
	if math.Abs(s) > limit {
		return math.Copysign(limit, s)
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

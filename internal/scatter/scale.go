package scatter

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"gonum.org/v1/gonum/floats"
)

// domainPadding is the fraction of the data range added on each side of the
// x and y domains.
const domainPadding = 0.05

// LinearScale maps a numeric domain onto a screen range. The range may be
// inverted (r0 > r1), which is how the y axis puts the data maximum on top.
type LinearScale struct {
	dom    scale.Linear
	r0, r1 float64
}

// NewLinearScale returns a scale mapping [d0,d1] onto [r0,r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{dom: scale.Linear{Min: d0, Max: d1}, r0: r0, r1: r1}
}

// Domain returns the input bounds.
func (l LinearScale) Domain() (float64, float64) { return l.dom.Min, l.dom.Max }

// Range returns the output bounds in the order they were given.
func (l LinearScale) Range() (float64, float64) { return l.r0, l.r1 }

// Map projects v. A collapsed domain maps every number to the middle of the
// range; NaN stays NaN.
func (l LinearScale) Map(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if l.dom.Min == l.dom.Max {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + l.dom.Map(v)*(l.r1-l.r0)
}

// Invert maps a screen coordinate back into the domain.
func (l LinearScale) Invert(px float64) float64 {
	if l.r0 == l.r1 {
		return l.dom.Min
	}
	t := (px - l.r0) / (l.r1 - l.r0)
	return l.dom.Min + t*(l.dom.Max-l.dom.Min)
}

// Ticks returns at most n nicely rounded tick values inside the domain.
func (l LinearScale) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	lo, hi := l.dom.Min, l.dom.Max
	if !finite(lo) || !finite(hi) {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	s := scale.Linear{Min: lo, Max: hi}
	major, _ := s.Ticks(scale.TickOptions{Max: n})
	out := make([]float64, 0, len(major))
	for _, t := range major {
		if t >= lo && t <= hi {
			out = append(out, t)
		}
	}
	return out
}

// SqrtScale is a power scale with exponent 1/2: the square root of the input
// is mapped linearly, so marker area tracks the value.
type SqrtScale struct {
	lin LinearScale
	d0  float64
	d1  float64
}

// NewSqrtScale returns a scale mapping [d0,d1] onto [r0,r1] through sqrt.
func NewSqrtScale(d0, d1, r0, r1 float64) SqrtScale {
	return SqrtScale{lin: NewLinearScale(signedSqrt(d0), signedSqrt(d1), r0, r1), d0: d0, d1: d1}
}

// Domain returns the input bounds.
func (s SqrtScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the output bounds.
func (s SqrtScale) Range() (float64, float64) { return s.lin.Range() }

// Map projects v.
func (s SqrtScale) Map(v float64) float64 { return s.lin.Map(signedSqrt(v)) }

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Extent returns the minimum and maximum of the finite values in vs.
func Extent(vs []float64) (lo, hi float64, ok bool) {
	fvs := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !finite(v) {
			continue
		}
		fvs = append(fvs, v)
	}
	if len(fvs) == 0 {
		return 0, 0, false
	}
	return floats.Min(fvs), floats.Max(fvs), true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// paddedExtent widens [lo,hi] by domainPadding of its width on each side.
func paddedExtent(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * domainPadding
	return lo - pad, hi + pad
}

// FormatTick renders a tick value in its shortest form, rounding away
// float noise such as 0.30000000000000004.
func FormatTick(v float64) string {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

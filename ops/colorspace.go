// SPDX-License-Identifier: MIT

package ops

import "math"

// BT.601 luma weights in BGR channel order.
const (
	lumaB = 0.114
	lumaG = 0.587
	lumaR = 0.299
)

// gray returns the luma of a BGR pixel.
func gray(px []float64) float64 {
	return lumaB*px[0] + lumaG*px[1] + lumaR*px[2]
}

// bgrToHSV converts channel values in [0, 255] to h ∈ [0, 360), s, v ∈ [0, 1].
func bgrToHSV(b, g, r float64) (h, s, v float64) {
	b, g, r = b/255, g/255, r/255
	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	v = mx
	delta := mx - mn
	if mx == 0 || delta == 0 {
		return 0, 0, v
	}
	s = delta / mx
	switch mx {
	case r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	return h, s, v
}

// hsvToBGR is the inverse of bgrToHSV, returning channels in [0, 255].
func hsvToBGR(h, s, v float64) (b, g, r float64) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	m := v - c

	return (b1 + m) * 255, (g1 + m) * 255, (r1 + m) * 255
}

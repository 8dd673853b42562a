package geom

import (
	"fmt"
	"math"
)

// Size is the extent of a rectangular area.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{
		Width:  w,
		Height: h,
	}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

func (sz Size) AsVec2() Vec2 {
	return Vec2{
		X: sz.Width,
		Y: sz.Height,
	}
}

func (sz Size) Splat() (w float64, h float64) {
	return sz.Width, sz.Height
}

// IsEmpty reports whether either side is zero or negative.
func (sz Size) IsEmpty() bool {
	return sz.Width <= 0 || sz.Height <= 0
}

// Abs returns the size with both sides made non-negative.
func (sz Size) Abs() Size {
	return Size{
		Width:  math.Abs(sz.Width),
		Height: math.Abs(sz.Height),
	}
}

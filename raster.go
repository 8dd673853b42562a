package geom

import (
	"image"
	"log/slog"
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// rasterFlatness is the flatness, in pixels, curves are flattened to before
// rasterizing.
const rasterFlatness = 0.25

// Rasterize fills the outline of it into an alpha mask covering bounds.
// Pixel (x, y) of the mask covers the square from (x, y) to (x+1, y+1) in
// the coordinate space of it. Subpaths are closed implicitly.
//
// The coverage of pixels is anti-aliased. For the [EvenOdd] winding rule,
// pixels whose centers are inside an even number of times are cleared, which
// only approximates coverage along the edges of holes.
//
// Paths that are malformed or contain non-finite coordinates result in an
// empty mask.
func Rasterize(it SegmentIterator, bounds image.Rectangle, opts ...FlattenOption) *image.Alpha {
	dst := image.NewAlpha(bounds)
	if bounds.Empty() {
		return dst
	}
	p, err := flattenToPath(it, opts)
	if err != nil {
		Logger().Debug("not rasterizing path", slog.String("reason", err.Error()))
		return dst
	}

	size := bounds.Size()
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	ras := vector.NewRasterizer(size.X, size.Y)
	ras.DrawOp = draw.Src
	var (
		c    [6]float32
		open bool
	)
	for pit := p.Iterator(nil); !pit.Done(); pit.Next() {
		kind := pit.Current32(&c)
		for _, v := range c[:2*kind.Points()] {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				Logger().Debug("not rasterizing path", slog.String("reason", "non-finite coordinate"))
				return image.NewAlpha(bounds)
			}
		}
		switch kind {
		case MoveToKind:
			if open {
				ras.ClosePath()
			}
			ras.MoveTo(c[0]-ox, c[1]-oy)
			open = true
		case LineToKind:
			ras.LineTo(c[0]-ox, c[1]-oy)
		case ClosePathKind:
			ras.ClosePath()
			open = false
		}
	}
	if open {
		ras.ClosePath()
	}
	ras.Draw(dst, bounds, image.Opaque, image.Point{})

	if p.rule == EvenOdd {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				i := dst.PixOffset(x, y)
				if dst.Pix[i] == 0 {
					continue
				}
				n := pointCrossingsForPath(p.kinds, p.coords, float64(x)+0.5, float64(y)+0.5)
				if n != 0 && n&1 == 0 {
					dst.Pix[i] = 0
				}
			}
		}
	}
	return dst
}

// RasterBounds returns the smallest pixel rectangle that covers the outline
// of it. It returns an empty rectangle for empty or malformed outlines.
func RasterBounds(it SegmentIterator) image.Rectangle {
	p, err := NewPathFrom[float32](it, nil)
	if err != nil || p.Len() == 0 {
		return image.Rectangle{}
	}
	b := p.Bounds()
	x0, y0 := clampPixel(math32.Floor(float32(b.X0))), clampPixel(math32.Floor(float32(b.Y0)))
	x1, y1 := clampPixel(math32.Ceil(float32(b.X1))), clampPixel(math32.Ceil(float32(b.Y1)))
	return image.Rect(x0, y0, x1, y1)
}

// clampPixel converts v to a pixel coordinate, clamping it to the range of
// int32.
func clampPixel(v float32) int {
	switch {
	case math32.IsNaN(v):
		return 0
	case v <= math.MinInt32:
		return math.MinInt32
	case v >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(v)
	}
}

// flattenToPath flattens the outline of it into a path of lines.
func flattenToPath(it SegmentIterator, opts []FlattenOption) (*Path32, error) {
	fit, err := NewFlatteningIterator(it, rasterFlatness, opts...)
	if err != nil {
		return nil, err
	}
	return NewPathFrom[float32](fit, nil)
}

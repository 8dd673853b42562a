package geom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"golang.org/x/exp/constraints"
)

// Tags of the binary path encoding.
const (
	tagFloat32 = 0x30
	tagFloat64 = 0x31

	tagMoveTo32  = 0x40
	tagLineTo32  = 0x41
	tagQuadTo32  = 0x42
	tagCubicTo32 = 0x43

	tagMoveTo64  = 0x50
	tagLineTo64  = 0x51
	tagQuadTo64  = 0x52
	tagCubicTo64 = 0x53

	tagClosePath = 0x60
	tagPathEnd   = 0x61
)

// Winding rule bytes.
const (
	wireEvenOdd = 0
	wireNonZero = 1
)

// errWriter turns a sequence of writes into a single error check.
type errWriter struct {
	w   io.Writer
	buf [8]byte
	err error
}

func (ew *errWriter) byte(b byte) {
	if ew.err != nil {
		return
	}
	ew.buf[0] = b
	_, ew.err = ew.w.Write(ew.buf[:1])
}

func (ew *errWriter) int32(v int32) {
	if ew.err != nil {
		return
	}
	binary.BigEndian.PutUint32(ew.buf[:4], uint32(v))
	_, ew.err = ew.w.Write(ew.buf[:4])
}

func (ew *errWriter) float32(v float32) {
	if ew.err != nil {
		return
	}
	binary.BigEndian.PutUint32(ew.buf[:4], math.Float32bits(v))
	_, ew.err = ew.w.Write(ew.buf[:4])
}

func (ew *errWriter) float64(v float64) {
	if ew.err != nil {
		return
	}
	binary.BigEndian.PutUint64(ew.buf[:8], math.Float64bits(v))
	_, ew.err = ew.w.Write(ew.buf[:8])
}

func (ew *errWriter) header(hint byte, numKinds, numCoords int, rule WindingRule) {
	ew.byte(hint)
	ew.int32(int32(numKinds))
	ew.int32(int32(numCoords))
	if rule == EvenOdd {
		ew.byte(wireEvenOdd)
	} else {
		ew.byte(wireNonZero)
	}
}

func segmentTag(kind SegmentKind, wide bool) byte {
	var tag byte
	switch kind {
	case MoveToKind:
		tag = tagMoveTo32
	case LineToKind:
		tag = tagLineTo32
	case QuadToKind:
		tag = tagQuadTo32
	case CubicToKind:
		tag = tagCubicTo32
	case ClosePathKind:
		return tagClosePath
	default:
		kindError(kind)
	}
	if wide {
		tag += tagMoveTo64 - tagMoveTo32
	}
	return tag
}

func isFloat32[T constraints.Float]() bool {
	var zero T
	_, ok := any(zero).(float32)
	return ok
}

// WritePath writes p to w in the binary path encoding. Coordinates are
// written with the precision of the path's storage.
func WritePath[T constraints.Float](w io.Writer, p *Path[T]) error {
	wide := !isFloat32[T]()
	hint := byte(tagFloat64)
	if !wide {
		hint = tagFloat32
	}
	ew := &errWriter{w: w}
	ew.header(hint, len(p.kinds), len(p.coords), p.rule)
	ci := 0
	for _, kind := range p.kinds {
		ew.byte(segmentTag(kind, wide))
		for _, v := range p.coords[ci : ci+2*kind.Points()] {
			if wide {
				ew.float64(float64(v))
			} else {
				ew.float32(float32(v))
			}
		}
		ci += 2 * kind.Points()
	}
	ew.byte(tagPathEnd)
	return ew.err
}

// WriteSegments writes the segments of it to w in the binary path encoding,
// using 64-bit coordinates. Since the number of segments isn't known in
// advance, the stream is terminated by an end tag.
func WriteSegments(w io.Writer, it SegmentIterator) error {
	ew := &errWriter{w: w}
	ew.header(tagFloat64, -1, -1, it.WindingRule())
	var coords [6]float64
	for ; !it.Done(); it.Next() {
		kind := it.Current(&coords)
		ew.byte(segmentTag(kind, true))
		for _, v := range coords[:2*kind.Points()] {
			ew.float64(v)
		}
		if ew.err != nil {
			return ew.err
		}
	}
	ew.byte(tagPathEnd)
	return ew.err
}

func corrupt(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrCorruptStream}, args...)...)
	Logger().Debug("rejected path stream", slog.String("reason", err.Error()))
	return err
}

// wireReader reads big-endian values, treating a premature end of input as
// a corrupt stream.
type wireReader struct {
	r   io.Reader
	buf [8]byte
}

func (wr *wireReader) fill(n int) error {
	if _, err := io.ReadFull(wr.r, wr.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return corrupt("unexpected end of stream")
		}
		return err
	}
	return nil
}

func (wr *wireReader) byte() (byte, error) {
	if err := wr.fill(1); err != nil {
		return 0, err
	}
	return wr.buf[0], nil
}

func (wr *wireReader) int32() (int32, error) {
	if err := wr.fill(4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(wr.buf[:4])), nil
}

func (wr *wireReader) float(wide bool) (float64, error) {
	if wide {
		if err := wr.fill(8); err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(wr.buf[:8])), nil
	}
	if err := wr.fill(4); err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(wr.buf[:4]))), nil
}

// ReadPath reads a path in the binary path encoding from r. Coordinates are
// converted to T regardless of the precision they were written with.
//
// Malformed input results in an error wrapping [ErrCorruptStream], and no
// path.
func ReadPath[T constraints.Float](r io.Reader) (*Path[T], error) {
	wr := &wireReader{r: r}
	hint, err := wr.byte()
	if err != nil {
		return nil, err
	}
	if hint != tagFloat32 && hint != tagFloat64 {
		return nil, corrupt("unknown storage hint 0x%02x", hint)
	}
	numKinds, err := wr.int32()
	if err != nil {
		return nil, err
	}
	numCoords, err := wr.int32()
	if err != nil {
		return nil, err
	}
	if numKinds < -1 || numCoords < -1 {
		return nil, corrupt("negative counts %d, %d", numKinds, numCoords)
	}
	wb, err := wr.byte()
	if err != nil {
		return nil, err
	}
	var rule WindingRule
	switch wb {
	case wireEvenOdd:
		rule = EvenOdd
	case wireNonZero:
		rule = NonZero
	default:
		return nil, corrupt("unknown winding rule %d", wb)
	}

	capacity := 0
	if numKinds > 0 {
		capacity = min(int(numKinds), 1<<16)
	}
	p := NewPath[T](rule, capacity)
	var c [6]float64
	read := 0
	coords := 0
	for {
		tag, err := wr.byte()
		if err != nil {
			return nil, err
		}
		if tag == tagPathEnd {
			break
		}
		if numKinds >= 0 && read == int(numKinds) {
			return nil, corrupt("more than %d segments", numKinds)
		}

		var kind SegmentKind
		wide := false
		switch {
		case tag >= tagMoveTo32 && tag <= tagCubicTo32:
			kind = MoveToKind + SegmentKind(tag-tagMoveTo32)
		case tag >= tagMoveTo64 && tag <= tagCubicTo64:
			kind = MoveToKind + SegmentKind(tag-tagMoveTo64)
			wide = true
		case tag == tagClosePath:
			kind = ClosePathKind
		default:
			return nil, corrupt("unknown segment tag 0x%02x", tag)
		}
		n := 2 * kind.Points()
		for i := range n {
			if c[i], err = wr.float(wide); err != nil {
				return nil, err
			}
		}

		switch kind {
		case MoveToKind:
			p.MoveTo(c[0], c[1])
		case LineToKind:
			err = p.LineTo(c[0], c[1])
		case QuadToKind:
			err = p.QuadTo(c[0], c[1], c[2], c[3])
		case CubicToKind:
			err = p.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case ClosePathKind:
			err = p.ClosePath()
		}
		if err != nil {
			return nil, corrupt("segment %d: %w", read, err)
		}
		read++
		coords += n
	}
	if numKinds >= 0 && read != int(numKinds) {
		return nil, corrupt("got %d segments, expected %d", read, numKinds)
	}
	if numCoords >= 0 && coords != int(numCoords) {
		return nil, corrupt("got %d coordinates, expected %d", coords, numCoords)
	}
	return p, nil
}

// WriteAffine writes the six coefficients of aff to w, in the order m00,
// m10, m01, m11, m02, m12.
func WriteAffine(w io.Writer, aff *Affine) error {
	ew := &errWriter{w: w}
	for _, v := range aff.Matrix() {
		ew.float64(v)
	}
	return ew.err
}

// ReadAffine reads a transform written by [WriteAffine].
func ReadAffine(r io.Reader) (Affine, error) {
	wr := &wireReader{r: r}
	var m [6]float64
	for i := range m {
		v, err := wr.float(true)
		if err != nil {
			return Affine{}, err
		}
		m[i] = v
	}
	return NewAffine(m[0], m[1], m[2], m[3], m[4], m[5]), nil
}

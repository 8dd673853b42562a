package geom

import "errors"

var (
	// ErrIllegalPathState is returned when a drawing segment is appended to a
	// path that does not start with a move.
	ErrIllegalPathState = errors.New("geom: missing initial move")

	// ErrNonInvertible is returned when inverting a transform whose
	// determinant is zero or too small to represent its reciprocal.
	ErrNonInvertible = errors.New("geom: transform is not invertible")

	// ErrCorruptStream is returned when decoding a malformed wire
	// representation of a path or transform.
	ErrCorruptStream = errors.New("geom: corrupt stream")

	// ErrInvalidArgument is returned for out-of-range selectors and
	// malformed buffer lengths.
	ErrInvalidArgument = errors.New("geom: invalid argument")
)

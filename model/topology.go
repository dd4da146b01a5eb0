package model

/*
Wrap maps a coordinate that stepped one unit off the grid back onto the torus:
-1 becomes size-1 and size becomes 0. Every other value is returned unchanged.

Only single-unit excursions are handled. This is not a general modulo and must
not be used for offsets larger than one; see wrapAny for that.
*/
func Wrap(value, size int) int {
	switch value {
	case -1:
		return size - 1
	case size:
		return 0
	}
	return value
}

// wrapAny reduces an arbitrary coordinate into [0, size).
func wrapAny(value, size int) int {
	return (value%size + size) % size
}

package model

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for non-positive sizes and unknown colors.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange is returned when a row or column falls outside the grid.
	ErrIndexOutOfRange = errors.New("index out of range")
)

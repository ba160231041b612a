package discord

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when search parameters are rejected
	// before any work begins.
	ErrInvalidConfig = errors.New("discord: invalid configuration")

	// ErrSeriesTooShort is returned when the series cannot hold one window.
	ErrSeriesTooShort = fmt.Errorf("%w: series shorter than window", ErrInvalidConfig)

	// ErrDiscretize wraps failures of the discretization pipeline.
	ErrDiscretize = errors.New("discord: discretization failed")

	// ErrDistance wraps failures of the distance function.
	ErrDistance = errors.New("discord: distance computation failed")
)

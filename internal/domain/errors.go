package domain

import "errors"

var (
	// ErrInvalidPriority indicates a string that is not one of the five priority levels.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidKind indicates a string that names no record kind.
	ErrInvalidKind = errors.New("invalid record kind")

	// ErrInvalidComplexity indicates a complexity outside 1..10.
	ErrInvalidComplexity = errors.New("complexity must be between 1 and 10")

	// ErrInvalidRatio indicates an augmentation ratio outside 0..1.
	ErrInvalidRatio = errors.New("augmentation ratio must be between 0 and 1")
)

// Package domain defines domain-level errors for the drawing feature.
package domain

import "errors"

// Domain errors for drawing tool operations. Operations on unknown or
// locked tools report these as soft failures — gesture-driven callers must
// keep running even when a stale id slips through.
var (
	// ErrToolNotFound indicates that no tool exists with the given id.
	ErrToolNotFound = errors.New("drawing tool not found")

	// ErrToolLocked indicates that a mutation was attempted on a locked tool.
	ErrToolLocked = errors.New("drawing tool is locked")

	// ErrUnknownToolType indicates an unrecognized tool type.
	ErrUnknownToolType = errors.New("unknown drawing tool type")

	// ErrInvalidPointCount indicates a tool whose point list does not match
	// its type: axis lines hold exactly one point, two-point tools exactly two.
	ErrInvalidPointCount = errors.New("point count does not match tool type")

	// ErrSnapshotNotFound indicates that no persisted snapshot exists for
	// the requested chart.
	ErrSnapshotNotFound = errors.New("drawing snapshot not found")

	// ErrInvalidSnapshot indicates a snapshot payload that violates the tool
	// invariants and must not be persisted.
	ErrInvalidSnapshot = errors.New("invalid drawing snapshot")
)

package dendro

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/matsen/dendro/internal/geometry"
)

var (
	// ErrNodesNotComputed is returned when nodes are requested from a
	// dendrogram generated without them.
	ErrNodesNotComputed = errors.New("dendro: nodes were not computed for this dendrogram")

	// ErrNoGeometry is returned when a dendrogram is generated before any
	// geometry was set or laid out.
	ErrNoGeometry = errors.New("dendro: no geometry has been set")
)

// OrderViolationError reports a bracket whose foot does not match any node
// registered so far: links were not emitted children-first.
type OrderViolationError struct {
	Merge int
	Side  string
	X     float64
	Y     float64
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("dendro: link %d: %s foot (%g, %g) matches no registered node; links must be emitted children-first",
		e.Merge, e.Side, e.X, e.Y)
}

// IdentityMismatchError reports a bracket joining two nodes that no linkage
// row merges, or a bracket reusing a merge or child already drawn: the
// geometry and the clustering disagree.
type IdentityMismatchError struct {
	Merge  int
	Left   int
	Right  int
	Reason string
}

func (e *IdentityMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("dendro: link %d joins nodes %d and %d: %s", e.Merge, e.Left, e.Right, e.Reason)
	}
	return fmt.Sprintf("dendro: link %d joins nodes %d and %d, which no linkage row merges", e.Merge, e.Left, e.Right)
}

// CoordinateCollisionError reports a merge whose position is already taken
// by another node.
type CoordinateCollisionError struct {
	Merge    int
	X        float64
	Y        float64
	Existing int
}

func (e *CoordinateCollisionError) Error() string {
	return fmt.Sprintf("dendro: link %d: position (%g, %g) is already held by node %d", e.Merge, e.X, e.Y, e.Existing)
}

// UnknownColorKeyError reports a color key missing from the color table.
type UnknownColorKeyError struct {
	Key     string
	Element string
	Index   int
}

func (e *UnknownColorKeyError) Error() string {
	return fmt.Sprintf("dendro: %s %d: color key %q is not in the color table", e.Element, e.Index, e.Key)
}

// InvalidOrientationError reports an unsupported orientation.
type InvalidOrientationError struct {
	Orientation string
	Supported   []string
}

func (e *InvalidOrientationError) Error() string {
	return fmt.Sprintf("dendro: orientation should be one of %s, got %q", strings.Join(e.Supported, ", "), e.Orientation)
}

// InvalidScaleError reports an unsupported value-axis scale.
type InvalidScaleError struct {
	Scale     string
	Supported []string
}

func (e *InvalidScaleError) Error() string {
	return fmt.Sprintf("dendro: scale should be one of %s, got %q", strings.Join(e.Supported, ", "), e.Scale)
}

// ErrorKind names the category of err for metrics and exit codes.
func ErrorKind(err error) string {
	var (
		malformed   *geometry.MalformedError
		data        *cluster.DataError
		order       *OrderViolationError
		identity    *IdentityMismatchError
		collision   *CoordinateCollisionError
		color       *UnknownColorKeyError
		orientation *InvalidOrientationError
		scale       *InvalidScaleError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &malformed):
		return "malformed_geometry"
	case errors.As(err, &data):
		return "cluster_data"
	case errors.As(err, &order):
		return "order_violation"
	case errors.As(err, &identity):
		return "identity_mismatch"
	case errors.As(err, &collision):
		return "coordinate_collision"
	case errors.As(err, &color):
		return "unknown_color_key"
	case errors.As(err, &orientation), errors.As(err, &scale):
		return "invalid_option"
	case errors.Is(err, ErrNodesNotComputed):
		return "nodes_not_computed"
	case errors.Is(err, ErrNoGeometry):
		return "no_geometry"
	default:
		return "error"
	}
}

// IsDataError reports whether err is a data contract violation (bad
// geometry, bad clustering data, or geometry and clustering disagreeing).
func IsDataError(err error) bool {
	switch ErrorKind(err) {
	case "malformed_geometry", "cluster_data", "order_violation", "identity_mismatch",
		"coordinate_collision", "unknown_color_key":
		return true
	}
	return false
}

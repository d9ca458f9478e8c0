// Package cluster holds an already-computed hierarchical clustering result
// (linkage table, flat-cluster assignment, cut threshold) and the structures
// derived from it: the merge map, the leader set, and the merge tree.
package cluster

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Merge is one row of a linkage table: children A and B were merged at
// Distance into a cluster of Count observations.
//
// Leaves occupy ids 0..N-1 and the k-th merge receives id N+k.
type Merge struct {
	A        int
	B        int
	Distance float64
	Count    int
}

// UnmarshalJSON decodes a linkage row written as a 4-element array.
// Ids may be written as floats (e.g. 3.0), as linkage tables usually are.
func (m *Merge) UnmarshalJSON(data []byte) error {
	var row []float64
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("decoding linkage row: %w", err)
	}
	return m.fromRow(row)
}

// MarshalJSON encodes the row as [a, b, distance, count].
func (m Merge) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{float64(m.A), float64(m.B), m.Distance, float64(m.Count)})
}

// UnmarshalYAML decodes a linkage row written as a 4-element sequence.
func (m *Merge) UnmarshalYAML(value *yaml.Node) error {
	var row []float64
	if err := value.Decode(&row); err != nil {
		return fmt.Errorf("decoding linkage row: %w", err)
	}
	return m.fromRow(row)
}

func (m *Merge) fromRow(row []float64) error {
	if len(row) != 4 {
		return fmt.Errorf("linkage row must have 4 entries, got %d", len(row))
	}
	a, err := wholeNumber(row[0], "first child")
	if err != nil {
		return err
	}
	b, err := wholeNumber(row[1], "second child")
	if err != nil {
		return err
	}
	count, err := wholeNumber(row[3], "member count")
	if err != nil {
		return err
	}
	*m = Merge{A: a, B: b, Distance: row[2], Count: count}
	return nil
}

// wholeNumber converts a float column value to an int, rejecting fractions
// and negatives.
func wholeNumber(v float64, what string) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || math.Trunc(v) != v {
		return 0, fmt.Errorf("linkage %s must be a non-negative integer, got %v", what, v)
	}
	return int(v), nil
}

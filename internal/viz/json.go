package viz

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/dendro/internal/dendro"
)

// ToJSON encodes the full dendrogram.
func ToJSON(d *dendro.Dendrogram) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("dendrogram cannot be nil")
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling dendrogram to JSON: %w", err)
	}
	return data, nil
}

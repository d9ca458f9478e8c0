// Package storage reads dendro input documents and keeps an ephemeral
// SQLite index of reconstructed nodes.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/dendro/internal/cluster"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadLinkageJSONL reads one [a, b, distance, count] row per line.
func ReadLinkageJSONL(path string) ([]cluster.Merge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening linkage file: %w", err)
	}
	defer f.Close()

	var linkage []cluster.Merge
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var m cluster.Merge
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		linkage = append(linkage, m)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading linkage file: %w", err)
	}

	return linkage, nil
}

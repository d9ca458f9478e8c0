package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/matsen/dendro/internal/geometry"
	"gopkg.in/yaml.v3"
)

// Input document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is a clustering result, optionally with precomputed geometry.
type Document struct {
	Linkage    []cluster.Merge    `json:"linkage" yaml:"linkage"`
	Assignment []int              `json:"assignment" yaml:"assignment"`
	Threshold  float64            `json:"threshold" yaml:"threshold"`
	Labels     []string           `json:"labels,omitempty" yaml:"labels,omitempty"`
	Dendrogram *geometry.Geometry `json:"dendrogram,omitempty" yaml:"dendrogram,omitempty"`
}

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q: must be .json, .yml or .yaml", filepath.Ext(path))
	}
}

// ReadDocument reads a JSON or YAML document from path.
func ReadDocument(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return ParseDocument(data, format)
}

// ParseDocument decodes a document in the given format.
func ParseDocument(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	return &doc, nil
}

// Info returns the clustering data of the document.
func (d *Document) Info() *cluster.Info {
	return cluster.New(d.Linkage, d.Assignment, d.Threshold)
}

// LeafLabel returns the leaf naming function for the layout producer, or
// nil when the document carries no labels.
func (d *Document) LeafLabel() (func(int) string, error) {
	if d.Labels == nil {
		return nil, nil
	}
	if want := len(d.Linkage) + 1; len(d.Labels) != want {
		return nil, &cluster.DataError{
			Reason: fmt.Sprintf("document has %d leaf labels, linkage implies %d leaves", len(d.Labels), want),
		}
	}
	labels := append([]string(nil), d.Labels...)
	return func(id int) string {
		if id >= 0 && id < len(labels) {
			return labels[id]
		}
		return strconv.Itoa(id)
	}, nil
}

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadLinkageJSONL(t *testing.T) {
	path := writeFile(t, "linkage.jsonl", "[0, 1, 1.0, 2]\n\n[2, 3, 1.0, 2]\n[4, 5, 3.5, 4]\n")

	linkage, err := ReadLinkageJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, []cluster.Merge{
		{A: 0, B: 1, Distance: 1, Count: 2},
		{A: 2, B: 3, Distance: 1, Count: 2},
		{A: 4, B: 5, Distance: 3.5, Count: 4},
	}, linkage)
}

func TestReadLinkageJSONL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad json", "[0, 1, 1.0, 2]\n{oops}\n", "parsing line 2"},
		{"short row", "[0, 1, 1.0]\n", "parsing line 1"},
		{"fractional id", "[0.5, 1, 1.0, 2]\n", "parsing line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLinkageJSONL(writeFile(t, "linkage.jsonl", tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := ReadLinkageJSONL("/nonexistent/linkage.jsonl")
	assert.ErrorContains(t, err, "opening linkage file")
}

func TestReadLinkageJSONL_LongLine(t *testing.T) {
	// Whitespace padding pushes the line past the default scanner buffer.
	line := "[0, 1," + strings.Repeat(" ", 100*1024) + "1.0, 2]\n"
	linkage, err := ReadLinkageJSONL(writeFile(t, "linkage.jsonl", line))
	require.NoError(t, err)
	assert.Len(t, linkage, 1)
}

func TestReadDocument(t *testing.T) {
	const yamlDoc = `
linkage: [[0, 1, 1.0, 2], [2, 3, 1.0, 2], [4, 5, 3.0, 4]]
assignment: [1, 1, 2, 2]
threshold: 2
labels: [a, b, c, d]
`
	const jsonDoc = `{
  "linkage": [[0, 1, 1.0, 2], [2, 3, 1.0, 2], [4, 5, 3.0, 4]],
  "assignment": [1, 1, 2, 2],
  "threshold": 2,
  "labels": ["a", "b", "c", "d"]
}`

	for _, tc := range []struct{ name, content string }{
		{"doc.yaml", yamlDoc},
		{"doc.yml", yamlDoc},
		{"doc.json", jsonDoc},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ReadDocument(writeFile(t, tc.name, tc.content))
			require.NoError(t, err)

			assert.Len(t, doc.Linkage, 3)
			assert.Equal(t, []int{1, 1, 2, 2}, doc.Assignment)
			assert.Equal(t, 2.0, doc.Threshold)
			assert.Nil(t, doc.Dendrogram)

			leaders, err := doc.Info().Leaders()
			require.NoError(t, err)
			assert.Equal(t, 2, leaders.Len())

			label, err := doc.LeafLabel()
			require.NoError(t, err)
			assert.Equal(t, "c", label(2))
		})
	}
}

func TestReadDocument_WithGeometry(t *testing.T) {
	doc, err := ReadDocument(writeFile(t, "doc.yml", `
linkage: [[0, 1, 1.0, 2]]
assignment: [1, 1]
threshold: 2
dendrogram:
  icoord: [[5, 5, 15, 15]]
  dcoord: [[0, 1, 1, 0]]
  color_list: [C0]
  ivl: [a, b]
  leaves: [0, 1]
  leaves_color_list: [C0, C0]
`))
	require.NoError(t, err)
	require.NotNil(t, doc.Dendrogram)
	assert.Equal(t, []string{"a", "b"}, doc.Dendrogram.LeafLabels)
	assert.Equal(t, [][]float64{{5, 5, 15, 15}}, doc.Dendrogram.ICoord)
}

func TestReadDocument_Errors(t *testing.T) {
	_, err := ReadDocument(writeFile(t, "doc.txt", "linkage: []"))
	assert.ErrorContains(t, err, "unsupported document extension")

	_, err = ReadDocument(writeFile(t, "doc.json", "{"))
	assert.ErrorContains(t, err, "parsing document")

	_, err = ReadDocument(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "reading document")

	_, err = ParseDocument([]byte("{}"), "toml")
	assert.ErrorContains(t, err, "unknown document format")
}

func TestDocumentLeafLabel(t *testing.T) {
	doc := &Document{Linkage: []cluster.Merge{{A: 0, B: 1, Distance: 1, Count: 2}}}

	label, err := doc.LeafLabel()
	require.NoError(t, err)
	assert.Nil(t, label)

	doc.Labels = []string{"only-one"}
	_, err = doc.LeafLabel()
	var dataErr *cluster.DataError
	assert.ErrorAs(t, err, &dataErr)
}

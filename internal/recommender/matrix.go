package recommender

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix is a dense, symmetric item-item matrix keyed by product
// id on both axes. Rows follow the order of IDs.
type SimilarityMatrix struct {
	IDs  []int64     `json:"ids"`
	Rows [][]float64 `json:"rows"`

	index map[int64]int
}

func NewSimilarityMatrix(ids []int64, rows [][]float64) *SimilarityMatrix {
	m := &SimilarityMatrix{IDs: ids, Rows: rows}
	m.buildIndex()
	return m
}

// buildIndex recomputes the id lookup. Must be called after decoding a
// persisted matrix, before any concurrent reads.
func (m *SimilarityMatrix) buildIndex() {
	m.index = make(map[int64]int, len(m.IDs))
	for i, id := range m.IDs {
		m.index[id] = i
	}
}

func (m *SimilarityMatrix) Len() int {
	return len(m.IDs)
}

// Row returns the similarity row for a product id, or nil if the id is not
// part of the matrix.
func (m *SimilarityMatrix) Row(id int64) []float64 {
	i, ok := m.index[id]
	if !ok {
		return nil
	}
	return m.Rows[i]
}

// At returns the similarity between two product ids, 0 if either is unknown.
func (m *SimilarityMatrix) At(a, b int64) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.Rows[i][j]
}

// Combine blends two similarity matrices elementwise:
// combined = cw*content + rw*collab. Both matrices must share an identical
// id order; a mismatch is a construction error, never a silent misalignment.
func Combine(content, collab *SimilarityMatrix, cw, rw float64) (*SimilarityMatrix, error) {
	if len(content.IDs) != len(collab.IDs) {
		return nil, fmt.Errorf("combine similarity: index size mismatch (%d vs %d)", len(content.IDs), len(collab.IDs))
	}
	for i, id := range content.IDs {
		if collab.IDs[i] != id {
			return nil, fmt.Errorf("combine similarity: index mismatch at position %d (%d vs %d)", i, id, collab.IDs[i])
		}
	}

	n := len(content.IDs)
	ids := make([]int64, n)
	copy(ids, content.IDs)

	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, n)
		for j := range row {
			row[j] = cw*content.Rows[i][j] + rw*collab.Rows[i][j]
		}
		rows[i] = row
	}
	return NewSimilarityMatrix(ids, rows), nil
}

// pairwiseCosine computes the full cosine-similarity matrix between sparse
// vectors. Rows are independent, so they are computed concurrently.
func pairwiseCosine(ids []int64, vectors []map[int]float64) *SimilarityMatrix {
	n := len(ids)
	norms := make([]float64, n)
	for i, vec := range vectors {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := i; j < n; j++ {
				s := cosine(vectors[i], vectors[j], norms[i], norms[j])
				rows[i][j] = s
				rows[j][i] = s
			}
			return nil
		})
	}
	g.Wait() // workers never return errors

	return NewSimilarityMatrix(ids, rows)
}

func cosine(a, b map[int]float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	// iterate the smaller vector
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for k, va := range a {
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	return dot / (normA * normB)
}

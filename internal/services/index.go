package services

import (
	"cmp"
	"fmt"
	"slices"
)

// Neighbor is one search hit: the insertion position of the stored vector
// and its squared L2 distance to the query.
type Neighbor struct {
	Position int
	Distance float64
}

// FlatIndex is an exact nearest-neighbor index over squared Euclidean
// distance. It is not safe for concurrent mutation; the batch flow builds
// one per request and the persistent store guards its own entries.
type FlatIndex struct {
	dimension int
	vectors   [][]float32
}

func NewFlatIndex(dimension int) *FlatIndex {
	return &FlatIndex{dimension: dimension}
}

// Add stores vec and returns its position.
func (ix *FlatIndex) Add(vec []float32) (int, error) {
	if len(vec) != ix.dimension {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), ix.dimension)
	}

	ix.vectors = append(ix.vectors, vec)
	return len(ix.vectors) - 1, nil
}

func (ix *FlatIndex) Len() int {
	return len(ix.vectors)
}

func (ix *FlatIndex) Dimension() int {
	return ix.dimension
}

// Search returns the k nearest stored vectors, closest first.
func (ix *FlatIndex) Search(query []float32, k int) ([]Neighbor, error) {
	return searchNearest(query, ix.dimension, len(ix.vectors), func(i int) []float32 {
		return ix.vectors[i]
	}, k)
}

// searchNearest scores every stored vector against query. An empty index
// answers with no neighbors; k above a non-zero stored count is ErrInvalidK.
func searchNearest(query []float32, dimension, stored int, vectorAt func(int) []float32, k int) ([]Neighbor, error) {
	if len(query) != dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(query), dimension)
	}
	if k <= 0 || stored == 0 {
		return []Neighbor{}, nil
	}
	if k > stored {
		return nil, fmt.Errorf("%w: k=%d, stored=%d", ErrInvalidK, k, stored)
	}

	neighbors := make([]Neighbor, stored)
	for i := 0; i < stored; i++ {
		neighbors[i] = Neighbor{Position: i, Distance: SquaredL2(query, vectorAt(i))}
	}

	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return neighbors[:k], nil
}

// SquaredL2 is the squared Euclidean distance between a and b, which must
// have equal length.
func SquaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// ClampK bounds k to the number of stored vectors.
func ClampK(k, stored int) int {
	return min(k, stored)
}

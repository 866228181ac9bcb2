package assignment

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrRaggedMatrix is returned when the rows of a cost matrix differ in length
	ErrRaggedMatrix = errors.New("cost matrix rows differ in length")
	// ErrInvalidCost is returned for NaN or infinite costs
	ErrInvalidCost = errors.New("cost matrix contains NaN or infinite value")
)

// Unassigned marks a row that was not matched to any column
const Unassigned = -1

// Solve computes a minimum-cost assignment for an n x m cost matrix (lower is better).
//
// The result has one entry per row: the matched column, or Unassigned. Exactly
// min(n, m) rows are matched and no column is used twice. The optimum is global,
// found with the Kuhn-Munkres potentials method in O(n^2 * m) for n <= m; wider
// than tall matrices are solved on their transpose. Ties resolve to the lowest
// column index, so the result is deterministic for a given matrix.
func Solve(costs [][]float64) ([]int, error) {
	n := len(costs)
	m := 0
	if n > 0 {
		m = len(costs[0])
	}

	for i, row := range costs {
		if len(row) != m {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedMatrix, i, len(row), m)
		}
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: at [%d][%d]", ErrInvalidCost, i, j)
			}
		}
	}

	match := make([]int, n)
	for i := range match {
		match[i] = Unassigned
	}
	if n == 0 || m == 0 {
		return match, nil
	}

	if n <= m {
		return solveWide(costs, n, m), nil
	}

	// More rows than columns: solve the transpose and invert the mapping
	transposed := make([][]float64, m)
	for j := 0; j < m; j++ {
		transposed[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			transposed[j][i] = costs[i][j]
		}
	}
	for col, row := range solveWide(transposed, m, n) {
		if row != Unassigned {
			match[row] = col
		}
	}
	return match, nil
}

// solveWide requires n <= m. Arrays are 1-indexed; index 0 is the virtual
// root of each augmenting path.
func solveWide(a [][]float64, n, m int) []int {
	inf := math.Inf(1)

	u := make([]float64, n+1) // row potentials
	v := make([]float64, m+1) // column potentials
	p := make([]int, m+1)     // p[j] = row assigned to column j
	way := make([]int, m+1)   // previous column on the augmenting path
	minv := make([]float64, m+1)
	used := make([]bool, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Flip the augmenting path
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	match := make([]int, n)
	for i := range match {
		match[i] = Unassigned
	}
	for j := 1; j <= m; j++ {
		if p[j] != 0 {
			match[p[j]-1] = j - 1
		}
	}
	return match
}

// TotalCost sums the cost of every assigned pair
func TotalCost(costs [][]float64, match []int) float64 {
	total := 0.0
	for i, j := range match {
		if j != Unassigned {
			total += costs[i][j]
		}
	}
	return total
}

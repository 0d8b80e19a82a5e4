package spiro

import (
	"errors"
	"math"
)

var errSingularMatrix = errors.New("singular matrix")

// pivotEpsilon is the magnitude, relative to the largest entry, below which
// a pivot is considered zero.
const pivotEpsilon = 1e-13

// bandMatrix is a square matrix whose entry (i, j) is zero unless
// i-ml <= j <= i+mu. Each row stores the columns [i-ml, i+ml+mu], leaving
// room for the fill-in caused by row interchanges.
type bandMatrix struct {
	n      int
	ml, mu int
	w      int
	data   []float64
}

func newBandMatrix(n, ml, mu int) *bandMatrix {
	w := 2*ml + mu + 1
	return &bandMatrix{
		n:    n,
		ml:   ml,
		mu:   mu,
		w:    w,
		data: make([]float64, n*w),
	}
}

func (m *bandMatrix) idx(i, j int) int {
	return i*m.w + j - i + m.ml
}

func (m *bandMatrix) at(i, j int) float64 {
	return m.data[m.idx(i, j)]
}

// add adds v to entry (i, j), which must lie within the band.
func (m *bandMatrix) add(i, j int, v float64) {
	m.data[m.idx(i, j)] += v
}

// solve solves m x = b by Gaussian elimination with partial pivoting,
// overwriting b with x. m is destroyed in the process.
func (m *bandMatrix) solve(b []float64) error {
	n := m.n
	var maxAbs float64
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errSingularMatrix
		}
		maxAbs = max(maxAbs, math.Abs(v))
	}
	tiny := maxAbs * pivotEpsilon
	if maxAbs == 0 {
		return errSingularMatrix
	}

	for k := range n {
		last := min(n-1, k+m.ml)
		right := min(n-1, k+m.ml+m.mu)

		p := k
		best := math.Abs(m.at(k, k))
		for i := k + 1; i <= last; i++ {
			if v := math.Abs(m.at(i, k)); v > best {
				p, best = i, v
			}
		}
		if best <= tiny {
			return errSingularMatrix
		}
		if p != k {
			for j := k; j <= right; j++ {
				a, c := m.idx(k, j), m.idx(p, j)
				m.data[a], m.data[c] = m.data[c], m.data[a]
			}
			b[k], b[p] = b[p], b[k]
		}

		pivot := m.at(k, k)
		for i := k + 1; i <= last; i++ {
			f := m.at(i, k) / pivot
			if f == 0 {
				continue
			}
			m.data[m.idx(i, k)] = 0
			for j := k + 1; j <= right; j++ {
				m.data[m.idx(i, j)] -= f * m.at(k, j)
			}
			b[i] -= f * b[k]
		}
	}

	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j <= min(n-1, i+m.ml+m.mu); j++ {
			s -= m.at(i, j) * b[j]
		}
		b[i] = s / m.at(i, i)
	}
	return nil
}

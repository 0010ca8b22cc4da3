// Package dicetest provides scripted dice.Source implementations for tests.
package dicetest

// Fixed always returns the same values: Int clamped into [0, n) and Float.
type Fixed struct {
	Int   int
	Float float64
}

// Intn returns f.Int clamped to n-1.
func (f Fixed) Intn(n int) int {
	if f.Int >= n {
		return n - 1
	}
	if f.Int < 0 {
		return 0
	}
	return f.Int
}

// Float64 returns f.Float.
func (f Fixed) Float64() float64 { return f.Float }

// Seq replays Ints and Floats in order, cycling when exhausted.
// An empty slice yields zero.
type Seq struct {
	Ints   []int
	Floats []float64
	i, f   int
}

// Intn returns the next scripted int modulo n.
func (s *Seq) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.i%len(s.Ints)]
	s.i++
	return ((v % n) + n) % n
}

// Float64 returns the next scripted float.
func (s *Seq) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.f%len(s.Floats)]
	s.f++
	return v
}

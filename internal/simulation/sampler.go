package simulation

import (
	"rafflesim/internal/raffle"
)

// Sampler draws one prize per trial from a ticket-weighted prize list.
// Prize order defines the cumulative ticket-range boundaries, so the same
// (prizes, seed) pair always reproduces the same winners.
type Sampler struct {
	prizes     []raffle.Prize
	cumulative []int
	total      int
}

// NewSampler builds the cumulative ticket ranges for the given prizes. The
// prize list is copied; the sampler never observes later mutations.
func NewSampler(prizes []raffle.Prize) *Sampler {
	s := &Sampler{
		prizes:     make([]raffle.Prize, len(prizes)),
		cumulative: make([]int, len(prizes)),
	}
	copy(s.prizes, prizes)

	running := 0
	for i, p := range s.prizes {
		running += p.Quantity
		s.cumulative[i] = running
	}
	s.total = running
	return s
}

// TotalTickets is the size of the ticket pool.
func (s *Sampler) TotalTickets() int { return s.total }

// Draw samples one prize. It returns nil when the ticket pool is empty:
// that trial costs the entry fee and pays nothing.
func (s *Sampler) Draw(src Source) *raffle.Prize {
	if s.total == 0 {
		return nil
	}

	r := src.Float64() * float64(s.total)
	for i, bound := range s.cumulative {
		if r < float64(bound) {
			return &s.prizes[i]
		}
	}
	// Float64() < 1 keeps r strictly below the last bound; this is
	// unreachable but safer than an index panic inside a hot loop.
	return &s.prizes[len(s.prizes)-1]
}

package almostover

import "time"

// Sampler rate-limits a stream of pointer moves to at most one sample per
// Period. It only drops: an accepted move is passed on immediately and a
// dropped one is never replayed.
type Sampler struct {
	Period time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	last time.Time
}

// Reset primes the sampler so the next sample is accepted no sooner than one
// Period from now.
func (s *Sampler) Reset() {
	s.last = s.now()
}

// Allow reports whether a move arriving now should become a sample. When
// active is false (nothing to track) the move is dropped without touching
// the sampler's timestamp.
func (s *Sampler) Allow(active bool) bool {
	if !active {
		return false
	}
	now := s.now()
	if now.Sub(s.last) < s.Period {
		return false
	}
	s.last = now
	return true
}

// Last returns the time of the last accepted sample (or of the last Reset).
func (s *Sampler) Last() time.Time {
	return s.last
}

func (s *Sampler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

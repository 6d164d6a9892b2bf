package services

import "sync/atomic"

// Supersede hands out increasing tokens and tells whether a token is still
// the latest.  A live session takes a token per request and drops the
// result when a newer request arrived while it was solving.
type Supersede struct {
	latest atomic.Uint64
}

// Next issues a new token that supersedes every earlier one.
func (s *Supersede) Next() uint64 {
	return s.latest.Add(1)
}

// Observe records an externally supplied token (e.g. a client sequence
// number) if it is newer than anything seen.  Returns false for stale ones.
func (s *Supersede) Observe(token uint64) bool {
	for {
		cur := s.latest.Load()
		if token <= cur {
			return token == cur
		}
		if s.latest.CompareAndSwap(cur, token) {
			return true
		}
	}
}

func (s *Supersede) IsCurrent(token uint64) bool {
	return s.latest.Load() == token
}

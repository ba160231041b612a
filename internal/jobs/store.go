package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Entry is the tracked state of one job
type Entry struct {
	ID          string
	Status      Status
	SubmittedAt time.Time
	UpdatedAt   time.Time
	Result      *Result
}

// Store tracks job state in memory. Finished jobs are evicted once they
// are older than the TTL.
type Store struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewStore creates a store. A non-positive ttl keeps finished jobs forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*Entry),
	}
}

// Add registers a submitted job as pending
func (s *Store) Add(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	s.entries[job.ID] = &Entry{
		ID:          job.ID,
		Status:      StatusPending,
		SubmittedAt: job.SubmittedAt,
		UpdatedAt:   s.now(),
	}
	return nil
}

// Update records a status report from a worker. Reports for unknown jobs
// are kept too, so a result that overtakes the submission is not lost.
// A finished job never moves back to an unfinished state.
func (s *Store) Update(res *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[res.JobID]
	if !exists {
		e = &Entry{ID: res.JobID, SubmittedAt: res.StartedAt}
		s.entries[res.JobID] = e
	}
	if e.Status.Finished() && !res.Status.Finished() {
		return
	}
	e.Status = res.Status
	e.Result = res
	e.UpdatedAt = s.now()
}

// Get returns a copy of the entry for id
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[id]
	if !exists || s.expired(e, s.now()) {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of tracked jobs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Evict removes finished jobs older than the TTL and returns how many were removed
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run evicts expired jobs every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}

func (s *Store) expired(e *Entry, now time.Time) bool {
	return s.ttl > 0 && e.Status.Finished() && now.Sub(e.UpdatedAt) > s.ttl
}

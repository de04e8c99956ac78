package jobs

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

// memoryStore is the in-memory Store used by tests and local development.
// It honors the same transition guards as the postgres store.
type memoryStore struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]Job
	pagination pagination.Config
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore(pagination pagination.Config) Store {
	return &memoryStore{
		jobs:       make(map[uuid.UUID]Job),
		pagination: pagination,
	}
}

func (s *memoryStore) Insert(_ context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryStore) Find(_ context.Context, id uuid.UUID) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *memoryStore) find(id uuid.UUID) (*Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (s *memoryStore) List(
	_ context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Job], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page.Normalize(s.pagination)

	var matched []Job
	for _, j := range s.jobs {
		if filters.Match(j) {
			matched = append(matched, j)
		}
	}

	slices.SortFunc(matched, func(a, b Job) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	total := len(matched)
	start := min((page.Page-1)*page.PageSize, total)
	end := min(start+page.PageSize, total)

	result := pagination.NewPageResult(matched[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func (s *memoryStore) Stale(_ context.Context, olderThan time.Duration) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	var stale []Job
	for _, j := range s.jobs {
		if j.Status == StatusProcessing && j.UpdatedAt.Before(cutoff) {
			stale = append(stale, j)
		}
	}

	slices.SortFunc(stale, func(a, b Job) int {
		return cmp.Compare(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	})

	return stale, nil
}

func (s *memoryStore) Acquire(_ context.Context, id uuid.UUID) (*Job, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.find(id)
	if err != nil {
		return nil, false, err
	}

	if j.Status != StatusCreated {
		return j, false, nil
	}

	j.Status = StatusProcessing
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = *j

	return j, true, nil
}

func (s *memoryStore) Reset(_ context.Context, id uuid.UUID) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if j.Status != StatusError {
		return nil, ErrInvalidTransition
	}

	j.Status = StatusCreated
	j.Error = nil
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = *j

	return j, nil
}

func (s *memoryStore) CompleteDone(_ context.Context, id uuid.UUID, result []byte) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if j.Status != StatusProcessing {
		return nil, ErrInvalidTransition
	}

	j.Status = StatusDone
	j.Result = slices.Clone(result)
	j.Error = nil
	j.InputRef = nil
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = *j

	return j, nil
}

func (s *memoryStore) CompleteError(_ context.Context, id uuid.UUID, message string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if j.Status != StatusProcessing {
		return nil, ErrInvalidTransition
	}

	j.Status = StatusError
	j.Error = &message
	j.Result = nil
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = *j

	return j, nil
}

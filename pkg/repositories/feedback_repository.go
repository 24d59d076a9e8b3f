package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// FeedbackRepository defines the interface for feedback data access.
// Records are immutable once stored; the only mutation after Create is Delete.
type FeedbackRepository interface {
	// Create stores a fully populated record. Fails if the ID is already taken.
	Create(ctx context.Context, record *models.FeedbackRecord) error

	// GetByID retrieves a record. Returns nil, nil if it does not exist.
	GetByID(ctx context.Context, id string) (*models.FeedbackRecord, error)

	// ListBySession returns all records of a session, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error)

	// List returns records newest first, sliced [offset, offset+limit).
	List(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error)

	// Delete removes a record. Returns false if it did not exist.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

type feedbackEntry struct {
	record *models.FeedbackRecord
	seq    uint64
}

// memoryFeedbackRepository implements FeedbackRepository in process memory.
// Contents are lost on restart.
type memoryFeedbackRepository struct {
	mu      sync.RWMutex
	entries map[string]feedbackEntry
	nextSeq uint64
}

// NewMemoryFeedbackRepository creates an empty in-memory feedback repository.
func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{
		entries: make(map[string]feedbackEntry),
	}
}

func (r *memoryFeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("%w: feedback record requires an id", apperrors.ErrInvalidRequest)
	}

	stored := cloneFeedback(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[record.ID]; exists {
		return fmt.Errorf("feedback %s already exists", record.ID)
	}
	r.nextSeq++
	r.entries[record.ID] = feedbackEntry{record: stored, seq: r.nextSeq}
	return nil
}

func (r *memoryFeedbackRepository) GetByID(ctx context.Context, id string) (*models.FeedbackRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	return cloneFeedback(entry.record), nil
}

func (r *memoryFeedbackRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]feedbackEntry, 0)
	for _, entry := range r.entries {
		if entry.record.SessionID == sessionID {
			matched = append(matched, entry)
		}
	}
	return newestFirst(matched), nil
}

func (r *memoryFeedbackRepository) List(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", apperrors.ErrInvalidRequest)
	}

	r.mu.RLock()
	all := make([]feedbackEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		all = append(all, entry)
	}
	r.mu.RUnlock()

	sorted := newestFirst(all)
	if offset >= len(sorted) {
		return []*models.FeedbackRecord{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *memoryFeedbackRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, nil
	}
	delete(r.entries, id)
	return true, nil
}

func (r *memoryFeedbackRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

// newestFirst orders by timestamp descending; equal timestamps fall back to
// insertion order, most recent first, so pagination is deterministic.
func newestFirst(entries []feedbackEntry) []*models.FeedbackRecord {
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].record.Timestamp, entries[j].record.Timestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	records := make([]*models.FeedbackRecord, len(entries))
	for i, entry := range entries {
		records[i] = cloneFeedback(entry.record)
	}
	return records
}

// cloneFeedback copies a record so callers never share memory with the store.
func cloneFeedback(r *models.FeedbackRecord) *models.FeedbackRecord {
	c := *r
	if r.Comments != nil {
		comments := *r.Comments
		c.Comments = &comments
	}
	if r.ResponseID != nil {
		responseID := *r.ResponseID
		c.ResponseID = &responseID
	}
	if r.InlineFeedback != nil {
		c.InlineFeedback = make([]map[string]any, len(r.InlineFeedback))
		for i, item := range r.InlineFeedback {
			copied := make(map[string]any, len(item))
			for k, v := range item {
				copied[k] = v
			}
			c.InlineFeedback[i] = copied
		}
	}
	return &c
}

var _ FeedbackRepository = (*memoryFeedbackRepository)(nil)

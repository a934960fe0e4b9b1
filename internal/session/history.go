package session

import (
	"github.com/Allknowingroger/Image-Fusion/internal/models"
)

const historyCap = 10

// History keeps the most recent fusion results, newest first. Inserting
// beyond capacity drops the oldest entry; lookups never reorder. The owning
// session's lock synchronizes access.
type History struct {
	capacity int
	entries  []*models.FusionResult
}

func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

func (h *History) Insert(r *models.FusionResult) {
	h.entries = append([]*models.FusionResult{r}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

func (h *History) Find(id int64) (*models.FusionResult, bool) {
	for _, r := range h.entries {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Entries returns the list newest first. The slice is a copy, the results
// are shared and immutable.
func (h *History) Entries() []*models.FusionResult {
	out := make([]*models.FusionResult, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"github.com/google/uuid"
)

// ErrNotAnImage carries the exact message shown to the user when a file of
// any other media type is offered.
var ErrNotAnImage = errors.New("Please upload only image files")

const (
	MinImages = 2
	MaxImages = 5
)

// Slot holds one staged image. Slots are replaced wholesale, never mutated,
// so snapshots taken for a fusion run stay stable.
type Slot struct {
	FileName  string
	MimeType  string
	Data      []byte
	PreviewID string
	AddedAt   time.Time
}

// SetImageCount resizes the slot list. Content below the new count is kept,
// content at or above it is discarded together with its preview.
func (s *Session) SetImageCount(n int) error {
	if n < MinImages || n > MaxImages {
		return fmt.Errorf("image count must be between %d and %d, got %d", MinImages, MaxImages, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n == s.imageCount {
		return nil
	}
	next := make([]*Slot, n)
	copy(next, s.slots)
	s.slots = next
	s.imageCount = n
	return nil
}

// SetSlot stages a file in slot i. Empty content clears the slot, non-image
// content is rejected with ErrNotAnImage and leaves the slot as it was, and a
// valid image replaces the slot, mints a fresh preview token and clears the
// session error.
func (s *Session) SetSlot(i int, fileName, declaredMime string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("slot index %d out of range", i)
	}

	if len(data) == 0 {
		s.slots[i] = nil
		return nil
	}

	mimeType := imaging.DetectMime(declaredMime, data)
	if !imaging.IsImage(mimeType) {
		return ErrNotAnImage
	}

	s.slots[i] = &Slot{
		FileName:  fileName,
		MimeType:  mimeType,
		Data:      data,
		PreviewID: uuid.NewString(),
		AddedAt:   time.Now(),
	}
	s.errMsg = ""
	return nil
}

// ClearSlot empties slot i, releasing its preview.
func (s *Session) ClearSlot(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("slot index %d out of range", i)
	}
	s.slots[i] = nil
	return nil
}

// Package session holds the per-browser state machine: upload slots, the
// prompt, the active fusion result and a bounded history.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"github.com/Allknowingroger/Image-Fusion/internal/models"
)

var (
	ErrFusionPending = errors.New("a fusion is already in progress")
	ErrNotReady      = errors.New("a prompt and all image slots are required")
	ErrNoSuchResult  = errors.New("no such result")
)

type Session struct {
	mu sync.Mutex

	id         string
	imageCount int
	slots      []*Slot
	prompt     string

	active  *models.FusionResult
	history *History

	errMsg     string
	pending    bool
	loadingMsg string

	lastSeen time.Time
}

func NewSession(id string, imageCount int) *Session {
	return &Session{
		id:         id,
		imageCount: imageCount,
		slots:      make([]*Slot, imageCount),
		history:    NewHistory(historyCap),
		lastSeen:   time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

func (s *Session) SetPrompt(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = p
}

// FusionSnapshot is the input of one fusion run, captured atomically so a
// concurrent slot mutation cannot change the run midway.
type FusionSnapshot struct {
	ImageCount int
	Prompt     string
	Files      []imaging.File
}

// BeginFusion admits at most one run at a time. It requires a non-blank
// prompt and every slot populated, marks the session pending and clears the
// previous error. The returned snapshot is what the run must operate on.
func (s *Session) BeginFusion() (*FusionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return nil, ErrFusionPending
	}
	if strings.TrimSpace(s.prompt) == "" || s.populatedLocked() != s.imageCount {
		return nil, ErrNotReady
	}

	s.pending = true
	s.errMsg = ""

	snap := &FusionSnapshot{
		ImageCount: s.imageCount,
		Prompt:     s.prompt,
		Files:      make([]imaging.File, 0, s.imageCount),
	}
	for _, slot := range s.slots {
		if slot == nil {
			continue
		}
		snap.Files = append(snap.Files, imaging.File{
			Name:     slot.FileName,
			MimeType: slot.MimeType,
			Data:     slot.Data,
		})
	}
	return snap, nil
}

// EndFusion closes the run admitted by BeginFusion and clears the loading
// message. It runs on every exit path, success or not.
func (s *Session) EndFusion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.loadingMsg = ""
}

// CommitFusion publishes a successful result: it becomes the active result
// and the newest history entry.
func (s *Session) CommitFusion(r *models.FusionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = r
	s.history.Insert(r)
}

// FailFusion records the failure message. Prior results and history are
// left untouched.
func (s *Session) FailFusion(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

func (s *Session) SetLoadingMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingMsg = msg
}

// SelectResult makes a history entry the active result. History order does
// not change.
func (s *Session) SelectResult(id int64) (*models.FusionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.history.Find(id)
	if !ok {
		return nil, ErrNoSuchResult
	}
	s.active = r
	return r, nil
}

// Result looks up a fusion by id, checking the active result first so a
// selected entry stays reachable even after history evicts it.
func (s *Session) Result(id int64) (*models.FusionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.ID == id {
		return s.active, true
	}
	return s.history.Find(id)
}

// PreviewBytes resolves a preview token to slot content. Tokens of replaced
// or removed slots stop resolving.
func (s *Session) PreviewBytes(previewID string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot != nil && slot.PreviewID == previewID {
			return slot.Data, slot.MimeType, true
		}
	}
	return nil, "", false
}

// State renders the whole session for the UI.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]models.SlotState, len(s.slots))
	for i, slot := range s.slots {
		slots[i] = models.SlotState{Index: i}
		if slot == nil {
			continue
		}
		slots[i].Filled = true
		slots[i].FileName = slot.FileName
		slots[i].MimeType = slot.MimeType
		slots[i].Size = int64(len(slot.Data))
		slots[i].PreviewID = slot.PreviewID
	}

	entries := s.history.Entries()
	history := make([]models.FusionResult, len(entries))
	for i, r := range entries {
		history[i] = *r
	}

	canFuse := !s.pending &&
		strings.TrimSpace(s.prompt) != "" &&
		s.populatedLocked() == s.imageCount

	return models.SessionState{
		ImageCount:     s.imageCount,
		Slots:          slots,
		Prompt:         s.prompt,
		CanFuse:        canFuse,
		Pending:        s.pending,
		LoadingMessage: s.loadingMsg,
		Error:          s.errMsg,
		ActiveResult:   s.active,
		History:        history,
	}
}

func (s *Session) populatedLocked() int {
	n := 0
	for _, slot := range s.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen reports the most recent activity, used by the manager janitor.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

package models

import (
	"fmt"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
)

// FusionResult is one completed fusion: a renderable image plus its caption.
// Results are immutable once created.
type FusionResult struct {
	ID        int64     `json:"id" example:"1766400000000"`
	Image     string    `json:"image" example:"data:image/png;base64,iVBORw0KGgo..."`
	Caption   string    `json:"caption" example:"Here is your fused image!"`
	MimeType  string    `json:"mime_type" example:"image/png"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFusionResult mints a result from the generated payload. The identifier
// is the creation timestamp in milliseconds.
func NewFusionResult(mimeType, b64, caption string, at time.Time) *FusionResult {
	return &FusionResult{
		ID:        at.UnixMilli(),
		Image:     imaging.DataURL(mimeType, b64),
		Caption:   caption,
		MimeType:  mimeType,
		CreatedAt: at,
	}
}

// Bytes decodes the raw image content for serving and download.
func (r *FusionResult) Bytes() ([]byte, error) {
	_, data, err := imaging.ParseDataURL(r.Image)
	return data, err
}

// SlotState describes one upload slot for the UI.
type SlotState struct {
	Index     int    `json:"index"`
	Filled    bool   `json:"filled"`
	FileName  string `json:"file_name,omitempty" example:"cat.png"`
	MimeType  string `json:"mime_type,omitempty" example:"image/png"`
	Size      int64  `json:"size,omitempty"`
	PreviewID string `json:"preview_id,omitempty"`
}

// SessionState is the full view of one browser session.
type SessionState struct {
	ImageCount     int            `json:"image_count" example:"2"`
	Slots          []SlotState    `json:"slots"`
	Prompt         string         `json:"prompt"`
	CanFuse        bool           `json:"can_fuse"`
	Pending        bool           `json:"pending"`
	LoadingMessage string         `json:"loading_message,omitempty"`
	Error          string         `json:"error,omitempty"`
	ActiveResult   *FusionResult  `json:"active_result,omitempty"`
	History        []FusionResult `json:"history"`
}

// CountRequest changes how many images a fusion takes.
type CountRequest struct {
	Count int `json:"count" validate:"required" example:"3"`
}

func (r CountRequest) Validate() error {
	if r.Count < 2 || r.Count > 5 {
		return fmt.Errorf("count must be between 2 and 5, got %d", r.Count)
	}
	return nil
}

// PromptRequest updates the fusion prompt.
type PromptRequest struct {
	Prompt string `json:"prompt" example:"Blend these images into one seamless scene"`
}

// FuseRequest starts a fusion. The prompt is optional and, when present,
// replaces the stored session prompt before the run.
type FuseRequest struct {
	Prompt string `json:"prompt,omitempty" example:"Merge these into a surreal dreamscape"`
}

// ExamplesResponse lists the canned prompts offered by the UI.
type ExamplesResponse struct {
	Examples []string `json:"examples"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Please upload only image files"`
}

package service

import (
	"context"
	"sync"

	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"google.golang.org/genai"
)

type mockGenerator struct {
	mu        sync.Mutex
	calls     int
	gotImages []imaging.EncodedImage
	gotPrompt string

	fn func(ctx context.Context, images []imaging.EncodedImage, prompt string) (*genai.GenerateContentResponse, error)
}

func (m *mockGenerator) GenerateFusion(
	ctx context.Context,
	images []imaging.EncodedImage,
	prompt string,
) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.gotImages = images
	m.gotPrompt = prompt
	m.mu.Unlock()
	return m.fn(ctx, images, prompt)
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// imageResponse builds a single-candidate model response with an optional
// inline image and an optional text part.
func imageResponse(mimeType string, data []byte, text string) *genai.GenerateContentResponse {
	var parts []*genai.Part
	if len(data) > 0 {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}})
	}
	if text != "" {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

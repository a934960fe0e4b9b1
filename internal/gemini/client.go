package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/Allknowingroger/Image-Fusion/internal/config"
	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"google.golang.org/genai"
)

// Client calls the hosted multimodal model. One fusion is one
// generateContent request carrying the images in slot order followed by the
// prompt, asking for both an image and text back.
type Client struct {
	genai *genai.Client
	model string
}

func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{genai: client, model: cfg.Model}, nil
}

func (c *Client) GenerateFusion(
	ctx context.Context,
	images []imaging.EncodedImage,
	prompt string,
) (*genai.GenerateContentResponse, error) {
	contents, err := fusionContents(images, prompt)
	if err != nil {
		return nil, err
	}

	return c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
}

func fusionContents(images []imaging.EncodedImage, prompt string) ([]*genai.Content, error) {
	parts := make([]*genai.Part, 0, len(images)+1)
	for i, img := range images {
		data, err := base64.StdEncoding.DecodeString(img.B64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %d: %w", i, err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: img.MimeType, Data: data},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

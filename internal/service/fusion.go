package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/config"
	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"github.com/Allknowingroger/Image-Fusion/internal/metrics"
	"github.com/Allknowingroger/Image-Fusion/internal/models"
	"github.com/Allknowingroger/Image-Fusion/internal/session"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type Generator interface {
	GenerateFusion(ctx context.Context, images []imaging.EncodedImage, prompt string) (*genai.GenerateContentResponse, error)
}

type FuseService struct {
	logger    *log.Logger
	generator Generator
	modelName string
	cache     Cache

	rotateEvery time.Duration
	now         func() time.Time
}

func NewFuseService(logger *log.Logger, generator Generator, cfg config.GeminiConfig) *FuseService {
	return &FuseService{
		logger:      logger,
		generator:   generator,
		modelName:   cfg.Model,
		rotateEvery: loadingMsgPeriod,
		now:         time.Now,
	}
}

func (s *FuseService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Fuse runs one fusion for the session: admit, encode, call the model,
// publish. A failure anywhere records the message on the session and leaves
// its results untouched; the pending flag and loading message clear on every
// path.
func (s *FuseService) Fuse(ctx context.Context, sess *session.Session) (*models.FusionResult, error) {
	snap, err := sess.BeginFusion()
	if err != nil {
		return nil, err
	}

	rot := newRotator(loadingMessages, s.rotateEvery)
	rot.Start(sess.SetLoadingMessage)
	defer func() {
		rot.Stop()
		sess.EndFusion()
	}()

	start := time.Now()

	encoded, err := s.encodeSnapshot(ctx, snap)
	if err != nil {
		sess.FailFusion(err.Error())
		metrics.FusionsTotal("error")
		return nil, err
	}

	key := s.cacheKey(encoded, snap.Prompt)
	if s.cache != nil {
		if out, found := s.cacheLookup(ctx, key); found {
			result := models.NewFusionResult(out.MimeType, out.ImageB64, out.Caption, s.now())
			sess.CommitFusion(result)
			metrics.FusionsTotal("cache_hit")
			metrics.FusionDuration("cache_hit", time.Since(start))
			return result, nil
		}
	}

	resp, err := s.generator.GenerateFusion(ctx, encoded, snap.Prompt)
	if err != nil {
		reqErr := fmt.Errorf("fusion request failed: %w", err)
		s.logger.Printf("%v\n", reqErr)
		sess.FailFusion(reqErr.Error())
		metrics.FusionsTotal("error")
		metrics.FusionDuration("error", time.Since(start))
		return nil, reqErr
	}

	imageData, mimeType, text := extractFusion(resp)
	if len(imageData) == 0 {
		msg := errMsgNoImage
		if text != "" {
			msg = text
		}
		s.logger.Printf("no image in model response: %s\n", msg)
		sess.FailFusion(msg)
		metrics.FusionsTotal("no_image")
		metrics.FusionDuration("no_image", time.Since(start))
		return nil, errors.New(msg)
	}

	caption := text
	if caption == "" {
		caption = captionFallback
	}

	b64 := base64.StdEncoding.EncodeToString(imageData)
	result := models.NewFusionResult(mimeType, b64, caption, s.now())
	sess.CommitFusion(result)

	if s.cache != nil {
		s.cacheStore(ctx, key, fusionOutput{MimeType: mimeType, ImageB64: b64, Caption: caption})
	}

	metrics.FusionsTotal("ok")
	metrics.FusionDuration("ok", time.Since(start))
	s.logger.Printf("fusion of %d images completed in %v\n", snap.ImageCount, time.Since(start))
	return result, nil
}

// encodeSnapshot prepares the request payload. The count check guards
// against slots mutated between admission and execution.
func (s *FuseService) encodeSnapshot(ctx context.Context, snap *session.FusionSnapshot) ([]imaging.EncodedImage, error) {
	encoded, err := imaging.EncodeAll(ctx, snap.Files)
	if err != nil {
		s.logger.Printf("encode error: %v\n", err)
		return nil, errors.New(errMsgMismatch)
	}
	if len(encoded) != snap.ImageCount {
		return nil, errors.New(errMsgMismatch)
	}
	return encoded, nil
}

// extractFusion reads the first candidate only: the first inline-image part
// and the first text part win, everything else is ignored.
func extractFusion(resp *genai.GenerateContentResponse) ([]byte, string, string) {
	var (
		imageData []byte
		mimeType  string
		text      string
	)

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", ""
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if imageData == nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			imageData = part.InlineData.Data
			mimeType = imaging.DetectMime(part.InlineData.MIMEType, imageData)
		}
		if text == "" && part.Text != "" {
			text = part.Text
		}
	}
	return imageData, mimeType, text
}

// fusionOutput is the cacheable portion of a model response.
type fusionOutput struct {
	MimeType string `json:"mime_type"`
	ImageB64 string `json:"image_b64"`
	Caption  string `json:"caption"`
}

func (s *FuseService) cacheLookup(ctx context.Context, key string) (fusionOutput, bool) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Printf("cache get error: %v\n", err)
		return fusionOutput{}, false
	}
	if !found {
		return fusionOutput{}, false
	}

	var out fusionOutput
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Printf("cache decode error: %v\n", err)
		return fusionOutput{}, false
	}
	s.logger.Println("served from cache")
	return out, true
}

func (s *FuseService) cacheStore(ctx context.Context, key string, out fusionOutput) {
	payload, err := sonic.Marshal(out)
	if err != nil {
		s.logger.Printf("cache encode error: %v\n", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.logger.Printf("failed to set cache: %v\n", err)
	}
}

func (s *FuseService) cacheKey(images []imaging.EncodedImage, prompt string) string {
	h := sha256.New()
	h.Write([]byte(s.modelName))
	for _, img := range images {
		h.Write([]byte(img.MimeType))
		h.Write([]byte(img.B64))
	}
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

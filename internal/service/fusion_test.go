package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/config"
	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"github.com/Allknowingroger/Image-Fusion/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var pngData = []byte("\x89PNG\r\n\x1a\nfakepixels")

func newTestService(gen Generator) *FuseService {
	s := NewFuseService(log.New(io.Discard, "", 0), gen, config.GeminiConfig{Model: "test-model"})
	s.rotateEvery = 5 * time.Millisecond

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	var ticks int64
	s.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}
	return s
}

func readySession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.NewSession("s", 2)
	sess.SetPrompt("blend the images")
	require.NoError(t, sess.SetSlot(0, "a.png", "image/png", pngData))
	require.NoError(t, sess.SetSlot(1, "b.png", "image/png", pngData))
	return sess
}

func TestFuseSuccess(t *testing.T) {
	fused := []byte("fused-pixels")
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("image/png", fused, "Fused!"), nil
		},
	}
	s := newTestService(gen)
	sess := readySession(t)

	result, err := s.Fuse(context.Background(), sess)
	require.NoError(t, err)

	wantImage := "data:image/png;base64," + base64.StdEncoding.EncodeToString(fused)
	assert.Equal(t, wantImage, result.Image)
	assert.Equal(t, "Fused!", result.Caption)

	st := sess.State()
	require.NotNil(t, st.ActiveResult)
	assert.Equal(t, result.ID, st.ActiveResult.ID)
	require.Len(t, st.History, 1)
	assert.Equal(t, result.ID, st.History[0].ID)
	assert.False(t, st.Pending)
	assert.Empty(t, st.LoadingMessage)
	assert.Empty(t, st.Error)

	require.Len(t, gen.gotImages, 2)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngData), gen.gotImages[0].B64)
	assert.Equal(t, "blend the images", gen.gotPrompt)
}

func TestFuseCaptionFallback(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("image/png", []byte("pix"), ""), nil
		},
	}
	s := newTestService(gen)

	result, err := s.Fuse(context.Background(), readySession(t))
	require.NoError(t, err)
	assert.Equal(t, "Here is your fused image!", result.Caption)
}

func TestFuseTextOnlyResponse(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("", nil, "unsafe content"), nil
		},
	}
	s := newTestService(gen)
	sess := readySession(t)

	_, err := s.Fuse(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, "unsafe content", err.Error())

	st := sess.State()
	assert.Equal(t, "unsafe content", st.Error)
	assert.Nil(t, st.ActiveResult)
	assert.Empty(t, st.History)
	assert.False(t, st.Pending)
	assert.Empty(t, st.LoadingMessage)
}

func TestFuseEmptyResponse(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		},
	}
	s := newTestService(gen)
	sess := readySession(t)

	_, err := s.Fuse(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, "The AI could not generate an image from your request.", err.Error())
	assert.Equal(t, "The AI could not generate an image from your request.", sess.State().Error)
}

func TestFuseTransportErrorKeepsResults(t *testing.T) {
	calls := 0
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			calls++
			if calls == 1 {
				return imageResponse("image/png", []byte("pix"), "first"), nil
			}
			return nil, errors.New("connection reset")
		},
	}
	s := newTestService(gen)
	sess := readySession(t)

	first, err := s.Fuse(context.Background(), sess)
	require.NoError(t, err)

	_, err = s.Fuse(context.Background(), sess)
	require.Error(t, err)

	st := sess.State()
	assert.Contains(t, st.Error, "connection reset")
	require.NotNil(t, st.ActiveResult)
	assert.Equal(t, first.ID, st.ActiveResult.ID, "failed run must not replace the active result")
	assert.Len(t, st.History, 1)
	assert.False(t, st.Pending)
}

func TestFuseNotReady(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("image/png", []byte("pix"), ""), nil
		},
	}
	s := newTestService(gen)

	sess := session.NewSession("s", 2)
	_, err := s.Fuse(context.Background(), sess)
	assert.ErrorIs(t, err, session.ErrNotReady)
	assert.Zero(t, gen.callCount())
	assert.Empty(t, sess.State().Error, "gating is not an error state")
}

func TestFusePendingAdmission(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("image/png", []byte("pix"), ""), nil
		},
	}
	s := newTestService(gen)
	sess := readySession(t)

	_, err := sess.BeginFusion()
	require.NoError(t, err)

	_, err = s.Fuse(context.Background(), sess)
	assert.ErrorIs(t, err, session.ErrFusionPending)
	assert.Zero(t, gen.callCount())
}

func TestEncodeSnapshotMismatch(t *testing.T) {
	s := newTestService(nil)

	// a slot cleared between admission and execution leaves the snapshot short
	snap := &session.FusionSnapshot{
		ImageCount: 3,
		Prompt:     "blend",
		Files: []imaging.File{
			{Name: "a.png", MimeType: "image/png", Data: pngData},
			{Name: "b.png", MimeType: "image/png", Data: pngData},
		},
	}
	_, err := s.encodeSnapshot(context.Background(), snap)
	require.Error(t, err)
	assert.Equal(t, errMsgMismatch, err.Error())

	snap = &session.FusionSnapshot{
		ImageCount: 1,
		Prompt:     "blend",
		Files:      []imaging.File{{Name: "empty.png", MimeType: "image/png"}},
	}
	_, err = s.encodeSnapshot(context.Background(), snap)
	require.Error(t, err)
	assert.Equal(t, errMsgMismatch, err.Error())
}

func TestFuseCacheHit(t *testing.T) {
	gen := &mockGenerator{
		fn: func(_ context.Context, _ []imaging.EncodedImage, _ string) (*genai.GenerateContentResponse, error) {
			return imageResponse("image/png", []byte("pix"), "cached caption"), nil
		},
	}
	s := newTestService(gen)
	s.SetCacheClient(newFakeCache())
	sess := readySession(t)

	first, err := s.Fuse(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, 1, gen.callCount())

	second, err := s.Fuse(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.callCount(), "second run must be served from cache")

	assert.NotEqual(t, first.ID, second.ID, "a cache hit still mints a fresh result")
	assert.Equal(t, first.Image, second.Image)
	assert.Equal(t, first.Caption, second.Caption)

	st := sess.State()
	assert.Equal(t, second.ID, st.ActiveResult.ID)
	assert.Len(t, st.History, 2)
}

func TestExtractFusionFirstPartsWin(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "first text"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first image")}},
				{Text: "second text"},
				{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second image")}},
			}}},
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/webp", Data: []byte("other candidate")}},
			}}},
		},
	}

	data, mimeType, text := extractFusion(resp)
	assert.Equal(t, []byte("first image"), data)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, "first text", text)
}

func TestExtractFusionSniffsMissingMime(t *testing.T) {
	resp := imageResponse("", pngData, "")
	data, mimeType, _ := extractFusion(resp)
	assert.Equal(t, pngData, data)
	assert.Equal(t, "image/png", mimeType)
}

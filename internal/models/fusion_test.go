package models

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFusionResult(t *testing.T) {
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	b64 := base64.StdEncoding.EncodeToString([]byte("pixels"))

	r := NewFusionResult("image/png", b64, "Fused!", at)

	assert.Equal(t, at.UnixMilli(), r.ID)
	assert.Equal(t, "data:image/png;base64,"+b64, r.Image)
	assert.Equal(t, "Fused!", r.Caption)
	assert.Equal(t, "image/png", r.MimeType)

	data, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestCountRequestValidate(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		assert.NoError(t, CountRequest{Count: n}.Validate())
	}
	for _, n := range []int{0, 1, 6, -3} {
		assert.Error(t, CountRequest{Count: n}.Validate())
	}
}

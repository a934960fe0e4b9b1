package gemini

import (
	"encoding/base64"
	"testing"

	"github.com/Allknowingroger/Image-Fusion/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFusionContentsOrder(t *testing.T) {
	images := []imaging.EncodedImage{
		{MimeType: "image/png", B64: base64.StdEncoding.EncodeToString([]byte("first"))},
		{MimeType: "image/jpeg", B64: base64.StdEncoding.EncodeToString([]byte("second"))},
	}

	contents, err := fusionContents(images, "blend them")
	require.NoError(t, err)
	require.Len(t, contents, 1)

	parts := contents[0].Parts
	require.Len(t, parts, 3, "two images then the prompt")

	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("first"), parts[0].InlineData.Data)

	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("second"), parts[1].InlineData.Data)

	assert.Equal(t, "blend them", parts[2].Text, "prompt must be the final part")
}

func TestFusionContentsRejectsBadBase64(t *testing.T) {
	_, err := fusionContents([]imaging.EncodedImage{{MimeType: "image/png", B64: "not-base64!!!"}}, "p")
	assert.Error(t, err)
}

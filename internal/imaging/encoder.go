package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// File is raw upload content before encoding.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// EncodedImage is the transport form of an image: its media type and
// the base64 payload.
type EncodedImage struct {
	MimeType string `json:"mime_type"`
	B64      string `json:"b64"`
}

// DetectMime resolves the media type of a file, preferring the declared
// type and sniffing the content when the declaration is missing or opaque.
func DetectMime(declared string, data []byte) string {
	mimeType := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType
}

// IsImage reports whether a media type names an image format.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// Encode turns file content into its transport form.
func Encode(f File) (EncodedImage, error) {
	if len(f.Data) == 0 {
		return EncodedImage{}, fmt.Errorf("cannot read file %q: no data", f.Name)
	}
	return EncodedImage{
		MimeType: DetectMime(f.MimeType, f.Data),
		B64:      base64.StdEncoding.EncodeToString(f.Data),
	}, nil
}

// EncodeAll encodes every file concurrently. Results keep the input order
// regardless of which encode finishes first.
func EncodeAll(ctx context.Context, files []File) ([]EncodedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]EncodedImage, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			results[i], errs[i] = Encode(f)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// DataURL builds an inline-renderable URL from a media type and base64 payload.
func DataURL(mimeType, b64 string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, b64)
}

// ParseDataURL splits a data URL back into its media type and raw bytes.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || mimeType == "" {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return mimeType, data, nil
}

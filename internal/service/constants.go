package service

import "time"

const (
	// Texts shown to the user verbatim.
	errMsgMismatch   = "Failed to process all of the selected images. Please try again."
	errMsgNoImage    = "The AI could not generate an image from your request."
	captionFallback  = "Here is your fused image!"
	loadingMsgPeriod = 3 * time.Second
)

var loadingMessages = []string{
	"Warming up the fusion engine...",
	"Blending your images together...",
	"Harmonizing colors and light...",
	"Adding the finishing touches...",
}

var promptExamples = []string{
	"Blend these images into one seamless, photorealistic scene",
	"Combine the subjects into a single epic fantasy painting",
	"Merge these into a surreal dreamscape",
	"Fuse the styles and subjects into one cohesive artwork",
}

// PromptExamples lists the canned prompts the UI offers for one-click fill.
func PromptExamples() []string {
	out := make([]string, len(promptExamples))
	copy(out, promptExamples)
	return out
}

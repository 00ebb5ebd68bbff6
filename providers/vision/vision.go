package vision

import (
	"context"
	"errors"

	"github.com/XayHanmonty/id-verification-poc/internal/imagefiles"
	"github.com/XayHanmonty/id-verification-poc/internal/jsonschema"
)

// DefaultPrompt asks the model for every field of a sample ID document.
const DefaultPrompt = `This is a SAMPLE/TEST ID document image with fake information for testing purposes.

Please extract ALL information from this ID document and return it in the specified structured format.

IMPORTANT: 
- This is a SAMPLE/TEST ID with FICTIONAL information used for testing. 
- DO NOT REDACT any parts of the document number or any other information - show the complete data.
- Extract the DOCUMENT NUMBER carefully, especially for California driver's licenses.
- Include any additional information like height, eye color, etc. in the additional_info field.`

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from vision model")

// Provider sends one image with a prompt to a vision-language model and
// returns the model's text.
type Provider interface {
	Describe(ctx context.Context, request Request) (*Response, error)
}

// Image is an encoded image file.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// ImageFromFile converts a loaded image file.
func ImageFromFile(f *imagefiles.File) Image {
	return Image{Name: f.Name, MIMEType: f.MIMEType, Data: f.Data}
}

// DataURL returns the image as a base64 data URL.
func (i Image) DataURL() string {
	return imagefiles.EncodeDataURL(i.MIMEType, i.Data)
}

// Request describes one extraction call. Zero MaxTokens leaves the limit to
// the provider; Schema, when set, is sent as the structured response format.
type Request struct {
	Image       Image
	Prompt      string
	Schema      *jsonschema.Schema
	MaxTokens   int
	Temperature float32
}

// Response is the raw model output.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        *Usage
}

// Usage reports token counts when the provider returns them.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// PromptOrDefault returns r.Prompt, or DefaultPrompt when it is empty.
func (r Request) PromptOrDefault() string {
	if r.Prompt == "" {
		return DefaultPrompt
	}
	return r.Prompt
}

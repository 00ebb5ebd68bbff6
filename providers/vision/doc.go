// Package vision defines the interface to vision-language models that read
// ID document images.
//
// Implementations live in the openai and gemini subpackages. Each one takes a
// [Request] carrying the image, the prompt and an optional JSON schema, and
// returns the model text untouched; interpreting that text is the job of
// core/extractor.
package vision

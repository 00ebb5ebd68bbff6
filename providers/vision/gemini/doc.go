// Package gemini implements vision.Provider with
// github.com/google/generative-ai-go. Responses are requested as
// application/json at the configured temperature.
package gemini

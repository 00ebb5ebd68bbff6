// Package openai implements vision.Provider over the OpenAI chat completions
// wire format. It defaults to the Fireworks endpoint and the Llama 3.2 11B
// vision model; any compatible server can be targeted with WithBaseURL.
//
// The image travels as a base64 data URL content part ahead of the prompt,
// and a schema in the request becomes a json_object response format.
package openai

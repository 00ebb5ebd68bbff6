package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XayHanmonty/id-verification-poc/internal/jsonschema"
	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

func testImage() vision.Image {
	return vision.Image{Name: "ca_license.jpg", MIMEType: "image/jpeg", Data: []byte("jpeg")}
}

func TestDescribe_SendsImageAndPrompt(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "cmpl-1",
			"model": "served-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  {\"full_name\": \"Jane Doe\"}\n"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`)
	}))
	defer server.Close()

	schema, err := jsonschema.GenerateJSONSchema[struct {
		FullName string `json:"full_name"`
	}]()
	if err != nil {
		t.Fatal(err)
	}

	p := New().WithAPIKey("secret").WithBaseURL(server.URL + "/").WithModel("test-model")
	resp, err := p.Describe(context.Background(), vision.Request{
		Image:     testImage(),
		Schema:    schema,
		MaxTokens: 1000,
	})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want %q", gotPath, "/chat/completions")
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("model = %v, want test-model", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(1000) {
		t.Errorf("max_tokens = %v, want 1000", gotBody["max_tokens"])
	}
	if gotBody["temperature"] != float64(0) {
		t.Errorf("temperature = %v, want 0", gotBody["temperature"])
	}

	format, _ := gotBody["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Errorf("response_format.type = %v, want json_object", format["type"])
	}
	if _, ok := format["schema"].(map[string]any); !ok {
		t.Errorf("response_format.schema = %v, want object", format["schema"])
	}

	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(messages))
	}
	parts, _ := messages[0].(map[string]any)["content"].([]any)
	if len(parts) != 2 {
		t.Fatalf("content parts = %d, want 2", len(parts))
	}
	image, _ := parts[0].(map[string]any)
	url, _ := image["image_url"].(map[string]any)["url"].(string)
	if url != "data:image/jpeg;base64,anBlZw==" {
		t.Errorf("image url = %q, want data URL", url)
	}
	text, _ := parts[1].(map[string]any)
	if text["text"] != vision.DefaultPrompt {
		t.Errorf("text part = %v, want DefaultPrompt", text["text"])
	}

	if resp.Content != `{"full_name": "Jane Doe"}` {
		t.Errorf("Content = %q, want trimmed JSON", resp.Content)
	}
	if resp.Model != "served-model" {
		t.Errorf("Model = %q, want %q", resp.Model, "served-model")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want stop", resp.FinishReason)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 150 {
		t.Errorf("Usage = %+v, want total 150", resp.Usage)
	}
}

func TestDescribe_OmitsOptionalFields(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = io.WriteString(w, `{"choices": [{"message": {"content": "Name: Jane"}}]}`)
	}))
	defer server.Close()

	p := New().WithAPIKey("k").WithBaseURL(server.URL)
	resp, err := p.Describe(context.Background(), vision.Request{Image: testImage(), Prompt: "read it"})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if _, ok := gotBody["response_format"]; ok {
		t.Error("response_format sent without a schema")
	}
	if _, ok := gotBody["max_tokens"]; ok {
		t.Error("max_tokens sent when zero")
	}
	if resp.Model != p.Model() {
		t.Errorf("Model = %q, want %q", resp.Model, p.Model())
	}
	if !strings.Contains(string(mustJSON(t, gotBody["messages"])), "read it") {
		t.Error("custom prompt not sent")
	}
}

func TestDescribe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr func(error) bool
	}{
		{
			name:   "http error",
			status: http.StatusUnauthorized,
			body:   `{"error": "bad key"}`,
			wantErr: func(err error) bool {
				var httpErr *utils.HTTPError
				return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices": []}`,
			wantErr: func(err error) bool {
				return errors.Is(err, vision.ErrEmptyResponse)
			},
		},
		{
			name:   "blank content",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"content": "   "}}]}`,
			wantErr: func(err error) bool {
				return errors.Is(err, vision.ErrEmptyResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := New().WithAPIKey("k").WithBaseURL(server.URL).Describe(context.Background(), vision.Request{Image: testImage()})
			if !tt.wantErr(err) {
				t.Errorf("Describe() error = %v", err)
			}
		})
	}
}

func TestDescribe_MissingAPIKey(t *testing.T) {
	t.Setenv("FIREWORKS_API_KEY", "")

	_, err := New().Describe(context.Background(), vision.Request{Image: testImage()})
	if err == nil || !strings.Contains(err.Error(), "FIREWORKS_API_KEY") {
		t.Errorf("Describe() error = %v, want missing key error", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("IDX_BASE_URL", "")
	t.Setenv("IDX_MODEL", "")

	p := New()
	if p.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", p.baseURL, defaultBaseURL)
	}
	if p.Model() != defaultModel {
		t.Errorf("Model() = %q, want %q", p.Model(), defaultModel)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

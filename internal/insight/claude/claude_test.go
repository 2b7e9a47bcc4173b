package claude

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/lookbook/internal/insight"
)

func TestClaudeSummarize(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		resp := map[string]interface{}{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-test",
			"stop_reason": "end_turn",
			"content": []map[string]interface{}{
				{"type": "text", "text": "  Du liebst elegante Schnitte.  "},
			},
			"usage": map[string]int{"input_tokens": 10, "output_tokens": 8},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	s := NewClaudeSummarizer("sk-test", "claude-test", server.URL)
	text, err := s.Summarize(context.Background(), insight.Profile{
		Lang:         "de",
		TotalRatings: 3,
		Styles:       []insight.StyleScore{{Label: "Elegant", HighRatings: 2, TotalRated: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Du liebst elegante Schnitte.", text)
	assert.Equal(t, "claude-test", gotBody["model"])
}

func TestClaudeSummarizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	s := NewClaudeSummarizer("sk-test", "", server.URL)
	_, err := s.Summarize(context.Background(), insight.Profile{})
	assert.Error(t, err)
}

func TestClaudeSummarizeEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[]}`))
	}))
	defer server.Close()

	s := NewClaudeSummarizer("sk-test", "claude-test", server.URL)
	_, err := s.Summarize(context.Background(), insight.Profile{})
	assert.Error(t, err)
}

func TestDefaultModel(t *testing.T) {
	s := NewClaudeSummarizer("sk-test", "", "")
	assert.Equal(t, DefaultModel, s.model)
}

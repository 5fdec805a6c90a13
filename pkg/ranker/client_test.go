package ranker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/pkg/apperror"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(utils.RankerConfig{
		APIKey:    "test-key",
		BaseURL:   url,
		Model:     "test-model",
		Timeout:   timeout,
		MaxTokens: 100,
	}, zap.NewNop())
}

func sampleRequest() *Request {
	return &Request{
		FareMin: 0,
		FareMax: 100,
		Candidates: []Candidate{
			{ID: "a", Origin: "Accra", Destination: "Kumasi", Fare: 40, Rating: 4.5, Departure: time.Now()},
			{ID: "b", Origin: "Accra", Destination: "Tamale", Fare: 60, Rating: 3.9, Departure: time.Now()},
		},
	}
}

func TestClient_Rank_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		assert.Contains(t, req.Messages[1].Content, "id=a")

		w.Write([]byte(completion(`{"trip_ids": ["b", "a"]}`)))
	}))
	defer srv.Close()

	ids, err := newTestClient(srv.URL, time.Second).Rank(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestClient_Rank_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"non 2xx", http.StatusTooManyRequests, `{"trip_ids": ["a"]}`},
		{"free text around array", http.StatusOK, `Here you go: ["a", "b"]`},
		{"empty list", http.StatusOK, `{"trip_ids": []}`},
		{"missing field", http.StatusOK, `{"ids": ["a"]}`},
		{"trailing object", http.StatusOK, `{"trip_ids": ["a"]} {"trip_ids": ["b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(completion(tt.content)))
			}))
			defer srv.Close()

			ids, err := newTestClient(srv.URL, time.Second).Rank(context.Background(), sampleRequest())
			assert.Nil(t, ids)
			assert.ErrorIs(t, err, ErrUnavailable)
			assert.Equal(t, apperror.KindExternal, apperror.KindOf(err))
		})
	}
}

func TestClient_Rank_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestClient(srv.URL, 50*time.Millisecond).Rank(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"batched", `[[{"label":"positive","score":0.9},{"label":"neutral","score":0.07},{"label":"negative","score":0.03}]]`},
		{"flat", `[{"label":"positive","score":0.9},{"label":"neutral","score":0.07},{"label":"negative","score":0.03}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/models/m", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				var req ClassifyReq
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "I love it", req.Inputs)
				assert.True(t, req.Options.WaitForModel)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewHTTP().Classify(context.Background(), srv.URL+"/models/m", "tok", "I love it")
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, ClassScore{Label: "positive", Score: 0.9}, got[0])
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte(`{"oops":1}`))
			return
		}
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP().Classify(context.Background(), srv.URL+"/m", "", "x")
	assert.ErrorContains(t, err, "503")
	assert.ErrorContains(t, err, "model loading")

	_, err = NewHTTP().Classify(context.Background(), srv.URL+"/bad", "", "x")
	assert.ErrorContains(t, err, "classify decode")
}

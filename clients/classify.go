package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// --- Text classification (Hugging Face inference, POST /{model}) ---
type ClassifyReq struct {
	Inputs  string         `json:"inputs"`
	Options ClassifyOption `json:"options"`
}
type ClassifyOption struct {
	WaitForModel bool `json:"wait_for_model"`
}
type ClassScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns every class score the model reports for text, highest
// first as the service orders them. token may be empty for local servers.
func (h *HTTP) Classify(ctx context.Context, url, token, text string) ([]ClassScore, error) {
	b, _ := json.Marshal(ClassifyReq{Inputs: text, Options: ClassifyOption{WaitForModel: true}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("classify read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classify %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return decodeScores(body)
}

// decodeScores accepts both [[{label,score}...]] (batched) and
// [{label,score}...].
func decodeScores(body []byte) ([]ClassScore, error) {
	var nested [][]ClassScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []ClassScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("classify decode: %w", err)
	}
	return flat, nil
}

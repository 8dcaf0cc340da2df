package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const manifestName = "manifest.json"

// manifest records a pulled model in the cache so IsDownloaded and the
// loader can operate without touching the embedding server.
type manifest struct {
	Model     string    `json:"model"`
	Endpoint  string    `json:"endpoint"`
	Dimension int       `json:"dimension"`
	PulledAt  time.Time `json:"pulled_at"`
}

// ServerClient encodes text through a local embedding server speaking the
// OpenAI-compatible /v1/embeddings protocol. Returned vectors are
// normalized to unit length.
type ServerClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	dimension  int
}

func NewServerClient(baseURL, model string, dimension int) *ServerClient {
	return &ServerClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
		dimension:  dimension,
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ServerClient) Embed(text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embedding response: %w", err)
	}

	var decoded embeddingResponse
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return nil, fmt.Errorf("embedding server: %s", decoded.Error.Message)
		}
		return nil, fmt.Errorf("embedding server: unexpected status %d", resp.StatusCode)
	}
	if len(decoded.Data) == 0 || len(decoded.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding server: empty embedding for model %s", c.model)
	}

	vec := decoded.Data[0].Embedding
	normalize(vec)
	return vec, nil
}

// Dimension is fixed at construction; a client built with 0 (a probe, or a
// manifest predating the dimension field) reports 0. Embed never mutates
// it, so concurrent encodes need no synchronization here.
func (c *ServerClient) Dimension() int {
	return c.dimension
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
}

// Pull verifies that the embedding server can serve the model by encoding a
// probe string, then writes a manifest into the model's cache directory.
// After a successful Pull the model counts as downloaded.
func Pull(ctx context.Context, baseURL, modelName, modelDir string) error {
	probe := NewServerClient(baseURL, modelName, 0)
	vec, err := probe.Embed("tunebridge model probe")
	if err != nil {
		return fmt.Errorf("probe model %s: %w", modelName, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return fmt.Errorf("create model cache dir: %w", err)
	}

	b, err := json.MarshalIndent(manifest{
		Model:     modelName,
		Endpoint:  baseURL,
		Dimension: len(vec),
		PulledAt:  time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(modelDir, manifestName), b, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ServerLoader returns a LoaderFunc that reads the pulled manifest for a
// model and constructs a server-backed encoder from it. Loading fails when
// the model has not been pulled into the cache.
func ServerLoader(baseURL string) LoaderFunc {
	return func(modelName, cacheDir string) (Encoder, error) {
		dir := filepath.Join(cacheDir, reUnsafePathChar.ReplaceAllString(modelName, "-"))
		b, err := os.ReadFile(filepath.Join(dir, manifestName))
		if err != nil {
			return nil, fmt.Errorf("model %s is not downloaded: %w", modelName, err)
		}

		var mf manifest
		if err := json.Unmarshal(b, &mf); err != nil {
			return nil, fmt.Errorf("corrupt manifest for model %s: %w", modelName, err)
		}

		endpoint := mf.Endpoint
		if baseURL != "" {
			endpoint = baseURL
		}
		return NewServerClient(endpoint, modelName, mf.Dimension), nil
	}
}

package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/common"
)

// MaxImageBytes bounds the scan attached to a request.
const MaxImageBytes = 8 << 20

// HTTPExtractor calls a structured-extraction service over HTTP. The request carries the
// document kind, its text, the JSON schema to answer with and optionally the scan as a
// data URL; the response body is the JSON document.
type HTTPExtractor struct {
	url     string
	headers map[string]string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPExtractor(cfg common.LLMConfig, logger *slog.Logger) *HTTPExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	return &HTTPExtractor{
		url:     cfg.URL,
		headers: headers,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// extractionRequest is the body posted to the extraction service.
type extractionRequest struct {
	Kind     constants.DocumentKind `json:"kind"`
	Text     string                 `json:"text,omitempty"`
	Filename string                 `json:"filename,omitempty"`
	Schema   map[string]any         `json:"schema"`
	Image    string                 `json:"image,omitempty"`
}

func (h *HTTPExtractor) ExtractJSON(ctx context.Context, req Request) ([]byte, error) {
	schema := Schema(req.Kind)
	if schema == nil {
		return nil, common.NewAppError(common.CodeUnsupported, "no schema for "+string(req.Kind), common.ErrInvalidInput)
	}
	body := extractionRequest{Kind: req.Kind, Text: req.Text, Filename: req.Filename, Schema: schema}
	if req.ImagePath != "" {
		dataURL, err := readAsDataURL(req.ImagePath)
		if err != nil {
			h.logger.Warn("llm.extract.image_skipped", "path", req.ImagePath, "error", err)
		} else {
			body.Image = dataURL
		}
	}
	raw, err := h.post(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("structured extraction: %w", err)
	}
	return raw, nil
}

// post sends body as JSON and returns the response body of a 2xx answer.
func (h *HTTPExtractor) post(ctx context.Context, body extractionRequest) ([]byte, error) {
	reqID := uuid.NewString()
	log := h.logger.With("req_id", reqID, "kind", body.Kind)
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	log.Debug("llm.http.request", "bytes", len(payload), "image", body.Image != "")
	resp, err := h.client.Do(req)
	if err != nil {
		log.Error("llm.http.failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn("llm.http.close_failed", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Info("llm.http.response", "status", resp.StatusCode, "bytes", len(raw), "elapsed_ms", time.Since(start).Milliseconds())
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("extraction service answered %d: %s", resp.StatusCode, snippet(raw, 200))
	}
	return raw, nil
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(bytes.TrimSpace(b))
}

func readAsDataURL(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if st.Size() > MaxImageBytes {
		return "", fmt.Errorf("image is %d bytes, limit %d", st.Size(), MaxImageBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ext := constants.NormalizeExt(filepath.Ext(path))
	mt := mime.TypeByExtension("." + ext)
	if mt == "" {
		switch ext {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		default:
			mt = "application/octet-stream"
		}
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

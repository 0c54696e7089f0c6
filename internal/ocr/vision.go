package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"

	"cardvault/internal/common"
)

// VisionClient calls the Google Vision images:annotate endpoint with a
// TEXT_DETECTION feature request. One synchronous call per image, no retry.
type VisionClient struct {
	cfg    common.OCRConfig
	http   *http.Client
	logger *slog.Logger
}

func NewVisionClient(cfg common.OCRConfig, logger *slog.Logger) *VisionClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://vision.googleapis.com/v1/images:annotate"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type annotateRequest struct {
	Requests []visionRequest `json:"requests"`
}

type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Extract reads the image fully into memory, base64-encodes it, and returns
// the first text annotation's description.
func (c *VisionClient) Extract(ctx context.Context, path string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	body := annotateRequest{
		Requests: []visionRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(content)},
			Features: []visionFeature{{Type: "TEXT_DETECTION"}},
		}},
	}

	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode annotate request: %w", err)
	}

	endpoint := c.cfg.Endpoint + "?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("ocr.vision.request",
		"req_id", rid,
		"path", path,
		"image_bytes", len(content),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ocr.vision.send_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("vision request: %w", err)
	}
	defer func(rc io.ReadCloser) {
		if err := rc.Close(); err != nil {
			c.logger.Warn("ocr.vision.body_close_error", "req_id", rid, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("ocr.vision.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("vision status %d: %s", resp.StatusCode, string(raw))
	}

	var ar annotateResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}
	if len(ar.Responses) == 0 {
		return "", fmt.Errorf("vision response missing annotations")
	}
	r0 := ar.Responses[0]
	if r0.Error != nil {
		return "", fmt.Errorf("vision annotate error %d: %s", r0.Error.Code, r0.Error.Message)
	}
	// Present-but-empty annotation list is the legitimate no-text case.
	if len(r0.TextAnnotations) == 0 {
		return "", nil
	}
	return r0.TextAnnotations[0].Description, nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type imageHostResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// ImageHost uploads files to an ImgBB-compatible host and returns the public
// URL of each upload.
type ImageHost struct {
	endpoint string
	apiKey   string
	client   *http.Client
	tracer   trace.Tracer
}

func NewImageHost(endpoint, apiKey string, timeout time.Duration) *ImageHost {
	return &ImageHost{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}
}

func (h *ImageHost) Enabled() bool {
	return h != nil && h.endpoint != "" && h.apiKey != ""
}

func (h *ImageHost) Upload(ctx context.Context, filename string, data []byte) (_ string, err error) {
	if !h.Enabled() {
		return "", ErrUploadDisabled
	}

	ctx, span := h.tracer.Start(ctx, "imagehost upload", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("file.name", filename),
			attribute.Int("file.size", len(data)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if timing := servertiming.FromContext(ctx); timing != nil {
		metric := timing.NewMetric("imagehost").WithDesc("upload " + filename).Start()
		defer metric.Stop()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	u, err := url.Parse(h.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid image host endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", h.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	var result imageHostResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to decode upload response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success || result.Data.URL == "" {
		return "", fmt.Errorf("upload of %s failed with status %d", filename, resp.StatusCode)
	}
	return result.Data.URL, nil
}

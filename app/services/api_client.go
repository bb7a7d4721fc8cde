package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	servertiming "github.com/mitchellh/go-server-timing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Rakhulsr/go-ecommerce-admin/app/services"

// TokenSource yields the bearer token of the staff member the request is
// made for. An empty token sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ItemResponse[T any] struct {
	Data T `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// ListParams are the query parameters understood by the list endpoints.
// Empty fields are left out of the query string.
type ListParams struct {
	Page        int
	Limit       int
	Search      string
	OrderNumber string
	CategoryID  string
	Status      string
	SortBy      string
	SortOrder   string
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", fmt.Sprintf("%d", p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", p.Limit))
	}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	set("search", p.Search)
	set("order_number", p.OrderNumber)
	set("category_id", p.CategoryID)
	set("status", p.Status)
	set("sort_by", p.SortBy)
	set("sort_order", p.SortOrder)
	return v
}

type APIClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	tracer  trace.Tracer
}

type ClientOption func(*APIClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(a *APIClient) { a.client = c }
}

func WithTokenSource(ts TokenSource) ClientOption {
	return func(a *APIClient) { a.tokens = ts }
}

func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(a *APIClient) { a.tracer = tp.Tracer(tracerName) }
}

func NewAPIClient(baseURL string, timeout time.Duration, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *APIClient) BaseURL() string { return c.baseURL }

// do sends one request and decodes a 2xx body into out (when out is non-nil).
// Any other outcome is returned as *APIError.
func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "api "+method, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if timing := servertiming.FromContext(ctx); timing != nil {
		metric := timing.NewMetric("api").WithDesc(method + " " + path).Start()
		defer metric.Stop()
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return &APIError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return &APIError{StatusCode: http.StatusUnauthorized, Err: fmt.Errorf("failed to obtain token: %w", err)}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &APIError{Err: fmt.Errorf("failed to perform request %s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope errorResponse
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Message = envelope.Message
		}
		log.Printf("APIClient.do: %s %s returned status %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)}
	}
	return nil
}

func resourcePath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

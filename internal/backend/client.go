package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"foodflow-frontend/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the outbound gateway to the platform backend REST API. It
// attaches bearer credentials when a token is supplied and normalizes
// every failure into the domain error taxonomy.
type Client struct {
	baseURL string
	client  HTTPClient
}

func NewClient(baseURL string, client HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Upload is an optional file attachment; when present, create/update calls
// switch from JSON to multipart form encoding.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
}

type errorPayload struct {
	Detail string `json:"detail"`
}

// request performs one backend call. GET passes params as the query
// string; other methods send body as a JSON payload. token may be empty:
// absence of credentials is the backend's problem, not ours.
func (c *Client) request(ctx context.Context, method, endpoint string, params url.Values, body any, token string, out any) error {
	target := c.baseURL + endpoint
	if method == http.MethodGet && len(params) > 0 {
		target += "?" + params.Encode()
	}

	var payload io.Reader
	if method != http.MethodGet && body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.ClientError{Err: err}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return &domain.ClientError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

// requestMultipart sends fields plus an optional file as multipart form
// data; used for restaurant/menu-item create and update with images.
func (c *Client) requestMultipart(ctx context.Context, method, endpoint string, fields map[string]string, file *Upload, token string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return &domain.ClientError{Err: err}
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return &domain.ClientError{Err: err}
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return &domain.ClientError{Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return &domain.ClientError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, &buf)
	if err != nil {
		return &domain.ClientError{Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &domain.RequestError{Status: resp.StatusCode, Message: "An error occurred"}
		var payload errorPayload
		if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
			reqErr.Message = payload.Detail
		}
		return reqErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &domain.ClientError{Err: err}
		}
	}
	return nil
}

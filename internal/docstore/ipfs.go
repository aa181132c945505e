package docstore

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

	"landregistry/pkg/platform/sentinel"
)

// IPFS talks to an IPFS node over its HTTP API. Connectivity failures and
// timeouts are reported as sentinel.ErrUnavailable so callers can fall back
// to the mock backend.
type IPFS struct {
	baseURL string
	client  *http.Client
}

// NewIPFS builds a client for the node's API endpoint (e.g.
// "http://127.0.0.1:5001"). The timeout applies per call.
func NewIPFS(baseURL string, timeout time.Duration) *IPFS {
	return &IPFS{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping checks node reachability; used once at process start to pick the
// backend.
func (s *IPFS) Ping(ctx context.Context) error {
	resp, err := s.post(ctx, "/api/v0/version", nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

type addResponse struct {
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

func (s *IPFS) Put(ctx context.Context, data []byte) (PutResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "document")
	if err != nil {
		return PutResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return PutResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return PutResult{}, fmt.Errorf("build multipart body: %w", err)
	}

	resp, err := s.postBody(ctx, "/api/v0/add", &body, writer.FormDataContentType())
	if err != nil {
		return PutResult{}, err
	}
	defer resp.Body.Close()

	var added addResponse
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		return PutResult{}, fmt.Errorf("decode add response: %w", err)
	}
	if added.Hash == "" {
		return PutResult{}, fmt.Errorf("add response missing hash: %w", sentinel.ErrUnavailable)
	}
	return PutResult{Address: added.Hash, Size: int64(len(data)), Backend: BackendIPFS}, nil
}

func (s *IPFS) Get(ctx context.Context, address string) ([]byte, error) {
	resp, err := s.post(ctx, "/api/v0/cat", map[string]string{"arg": address}, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document body: %v: %w", err, sentinel.ErrUnavailable)
	}
	return data, nil
}

func (s *IPFS) Pin(ctx context.Context, address string) error {
	resp, err := s.post(ctx, "/api/v0/pin/add", map[string]string{"arg": address}, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *IPFS) Unpin(ctx context.Context, address string) error {
	resp, err := s.post(ctx, "/api/v0/pin/rm", map[string]string{"arg": address}, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *IPFS) post(ctx context.Context, path string, params map[string]string, contentType string) (*http.Response, error) {
	u := s.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	return s.do(ctx, u, nil, contentType)
}

func (s *IPFS) postBody(ctx context.Context, path string, body io.Reader, contentType string) (*http.Response, error) {
	return s.do(ctx, s.baseURL+path, body, contentType)
}

// do performs the request and classifies the outcome: transport errors and
// 5xx responses mean the node is unavailable; a 404-shaped API error on
// cat/pin means the address is unknown to this backend.
func (s *IPFS) do(ctx context.Context, u string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ipfs api: %v: %w", err, sentinel.ErrUnavailable)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusInternalServerError, http.StatusBadRequest, http.StatusNotFound:
		// The IPFS API reports "not found" style failures (unknown path, not
		// pinned) as 500/400 with a JSON message body.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("ipfs api status %d: %s: %w", resp.StatusCode, msg, sentinel.ErrNotFound)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("ipfs api status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
}

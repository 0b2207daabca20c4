package publications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/domain/repository"
	"content-planner/infrastructure/credential"
	"content-planner/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

// Config represents the publication backend connection settings
type Config struct {
	BaseURL        string
	PublishNowPath string
	Timeout        time.Duration
}

// Client talks to the publication backend with the caller's bearer token.
type Client struct {
	baseURL        string
	publishNowPath string
	httpClient     *http.Client
}

// NewClient creates a backend client. A nil httpClient gets a pooled transport.
func NewClient(cfg Config, httpClient *http.Client) repository.IPublication {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Transport: defaultTransport(), Timeout: timeout}
	}
	publishNowPath := cfg.PublishNowPath
	if publishNowPath == "" {
		publishNowPath = "/instagram/publish"
	}
	if !strings.HasPrefix(publishNowPath, "/") {
		publishNowPath = "/" + publishNowPath
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		publishNowPath: publishNowPath,
		httpClient:     httpClient,
	}
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxConnsPerHost:     50,
		MaxIdleConnsPerHost: 10,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// ListPublications retrieves every publication visible to the caller
func (c *Client) ListPublications(ctx context.Context, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	endpoint := c.baseURL + "/publications"
	if req != nil {
		values, err := query.Values(req)
		if err != nil {
			return nil, fmt.Errorf("encode publication filters: %w", err)
		}
		if encoded := values.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	var list []model.RawPublication
	if err := c.do(ctx, "list publications", http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.RawPublication{}
	}
	return list, nil
}

// CreatePublication schedules (or immediately creates) a publication
func (c *Client) CreatePublication(ctx context.Context, req *dto.CreatePublicationRequest) (*model.RawPublication, error) {
	var created model.RawPublication
	if err := c.do(ctx, "create publication", http.MethodPost, c.baseURL+"/publications", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// PublishNow sends media straight to the platform without a publish time
func (c *Client) PublishNow(ctx context.Context, req *dto.PublishNowRequest) (*dto.PublishNowResponse, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "publish now", http.MethodPost, c.baseURL+c.publishNowPath, req, &raw); err != nil {
		return nil, err
	}
	res := &dto.PublishNowResponse{Raw: raw}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, res)
	}
	return res, nil
}

func (c *Client) GetPublication(ctx context.Context, id string) (*model.RawPublication, error) {
	var pub model.RawPublication
	if err := c.do(ctx, "get publication", http.MethodGet, c.publicationURL(id), nil, &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}

func (c *Client) UpdatePublication(ctx context.Context, id string, updates map[string]interface{}) (*model.RawPublication, error) {
	var pub model.RawPublication
	if err := c.do(ctx, "update publication", http.MethodPatch, c.publicationURL(id), updates, &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}

func (c *Client) DeletePublication(ctx context.Context, id string) error {
	return c.do(ctx, "delete publication", http.MethodDelete, c.publicationURL(id), nil, nil)
}

// PublishPublication asks the backend to publish an existing record right away
func (c *Client) PublishPublication(ctx context.Context, id string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "publish publication", http.MethodPost, c.publicationURL(id)+"/publish", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) publicationURL(id string) string {
	return c.baseURL + "/publications/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body interface{}, out interface{}) error {
	token := credential.Bearer(ctx)
	if token == "" {
		return model.ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("op", op).WithField("error", err).Warn("backend request failed")
		return &model.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	logger.GetLogger().WithFields(map[string]interface{}{
		"op":     op,
		"method": method,
		"status": resp.StatusCode,
	}).Debug("backend response")

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.NetworkError{Op: op, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		if contentType == "" {
			contentType = "unknown content type"
		}
		logger.GetLogger().WithField("op", op).WithField("body", truncate(string(payload), 200)).Error("backend returned non-JSON response")
		return &model.BackendError{
			StatusCode: http.StatusBadGateway,
			Message:    "Backend returned invalid response format: expected JSON but received " + contentType,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody dto.ErrorResponse
		_ = json.Unmarshal(payload, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = errBody.Error
		}
		return &model.BackendError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &model.BackendError{StatusCode: http.StatusBadGateway, Message: fmt.Sprintf("malformed %s response: %v", op, err)}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

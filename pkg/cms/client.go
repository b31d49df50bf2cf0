// Package cms is a small read-only client for the Sanity content API.
// It sends GROQ queries and decodes the "result" member of the response.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrQuery is wrapped by every error the content API reports about a query.
var ErrQuery = errors.New("content query failed")

type Options struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// Host replaces "{project}.api.sanity.io" / "{project}.apicdn.sanity.io" when set.
	// It may carry a scheme; https is assumed otherwise.
	Host       string
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if opts.Dataset == "" {
		return nil, errors.New("dataset is required")
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "2024-10-01"
	}

	host := opts.Host
	if host == "" {
		if opts.ProjectID == "" {
			return nil, errors.New("project id is required")
		}
		domain := "api.sanity.io"
		// Authenticated requests bypass the CDN anyway; keep them on the live API.
		if opts.UseCDN && opts.Token == "" {
			domain = "apicdn.sanity.io"
		}
		host = fmt.Sprintf("https://%s.%s", opts.ProjectID, domain)
	} else if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL: fmt.Sprintf("%s/v%s/data/query/%s", strings.TrimRight(host, "/"), strings.TrimPrefix(opts.APIVersion, "v"), url.PathEscape(opts.Dataset)),
		token:   opts.Token,
		http:    httpClient,
	}, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// Query runs a GROQ query and decodes its result into out.
// Params are sent as $name query values, JSON encoded as the API expects.
// A null result leaves out untouched, so a pointer target stays nil.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrQuery, err)
	}

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("%w: %s (%d): %s", ErrQuery, apiErr.Error.Type, resp.StatusCode, apiErr.Error.Description)
		}
		return fmt.Errorf("%w: status %d", ErrQuery, resp.StatusCode)
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrQuery, err)
	}
	if len(qr.Result) == 0 || string(qr.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(qr.Result, out); err != nil {
		return fmt.Errorf("%w: decode result: %v", ErrQuery, err)
	}
	return nil
}

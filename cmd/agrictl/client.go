package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// apiClient talks to the server's /service endpoints.
type apiClient struct {
	baseURL string
	rest    *resty.Client
}

func newAPIClient(s Settings) *apiClient {
	base := strings.TrimRight(s.BaseURL, "/")
	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(s.Timeout).
		SetHeader("Accept", "application/json")
	if s.ServiceKey != "" {
		rc.SetHeader("apikey", s.ServiceKey)
	}
	return &apiClient{baseURL: base, rest: rc}
}

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	req := c.rest.R().
		SetContext(ctx).
		SetError(&apiError{})
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*apiError)
		if apiErr == nil {
			apiErr = &apiError{}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}

/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
)

type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
}

// NewAPIClient creates a client for the server at baseURL.
func NewAPIClient(config *TestConfig, baseURL string) *APIClient {
	return newAPIClientWithConfig(config, baseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
	}
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) AuthToken() string {
	return c.authToken
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", method, path, expectedStatus, actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)
		return resp, respBody, fmt.Errorf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", expectedStatus, resp.StatusCode, string(respBody), extractTraceID(traceParent))
	}

	return resp, respBody, nil
}

// Response is a raw API response.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body.
func (r *Response) JSON() (map[string]interface{}, error) {
	var result map[string]interface{}

	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	return result, nil
}

// JSONList decodes a response body holding an array.
func (r *Response) JSONList() ([]map[string]interface{}, error) {
	var result []map[string]interface{}

	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	return result, nil
}

// Do performs a request with a JSON body, any status is accepted.
func (c *APIClient) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = strings.NewReader(string(data))
	}

	//nolint:bodyclose // response body is closed in doRequest
	resp, respBody, err := c.doRequest(ctx, method, path, reader, 0)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// expect performs a request and decodes the response if the status matches.
func (c *APIClient) expect(ctx context.Context, method, path string, body interface{}, expectedStatus int, resource string) (map[string]interface{}, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body: %w", resource, err)
		}

		reader = strings.NewReader(string(data))
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, method, path, reader, expectedStatus)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}

	if len(respBody) == 0 {
		return nil, nil //nolint:nilnil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", resource, err)
	}

	return result, nil
}

// Login authenticates and uses the returned token for later requests.
func (c *APIClient) Login(ctx context.Context, username, password string) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"username": username,
		"password": password,
	}

	result, err := c.expect(ctx, http.MethodPost, c.endpoints.Login(), body, http.StatusOK, "logging in")
	if err != nil {
		return nil, err
	}

	token, ok := result["token"].(string)
	if !ok || token == "" {
		return nil, fmt.Errorf("login response has no token")
	}

	c.SetAuthToken(token)

	return result, nil
}

// ListPosts lists all posts.
func (c *APIClient) ListPosts(ctx context.Context) ([]map[string]interface{}, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListPosts(), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var posts []map[string]interface{}
	if err := json.Unmarshal(respBody, &posts); err != nil {
		return nil, fmt.Errorf("unmarshaling posts response: %w", err)
	}

	return posts, nil
}

// GetPost retrieves a specific post.
func (c *APIClient) GetPost(ctx context.Context, id int64) (map[string]interface{}, error) {
	return c.expect(ctx, http.MethodGet, c.endpoints.GetPost(id), nil, http.StatusOK, "getting post")
}

// CreatePost creates a new post.
func (c *APIClient) CreatePost(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	return c.expect(ctx, http.MethodPost, c.endpoints.CreatePost(), body, http.StatusCreated, "creating post")
}

// UpdatePost partially updates a post.
func (c *APIClient) UpdatePost(ctx context.Context, id int64, body map[string]interface{}) (map[string]interface{}, error) {
	return c.expect(ctx, http.MethodPut, c.endpoints.UpdatePost(id), body, http.StatusOK, "updating post")
}

// DeletePost deletes a post.
func (c *APIClient) DeletePost(ctx context.Context, id int64) (map[string]interface{}, error) {
	return c.expect(ctx, http.MethodDelete, c.endpoints.DeletePost(id), nil, http.StatusOK, "deleting post")
}

// CreatePet adds a pet.
func (c *APIClient) CreatePet(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	return c.expect(ctx, http.MethodPost, c.endpoints.CreatePet(), body, http.StatusCreated, "creating pet")
}

// DeletePet removes a pet.
func (c *APIClient) DeletePet(ctx context.Context, id int64) error {
	//nolint:bodyclose // response body is closed in doRequest
	_, _, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeletePet(id), nil, http.StatusNoContent)
	if err != nil {
		return fmt.Errorf("deleting pet: %w", err)
	}

	return nil
}

// Package client is the HTTP adapter the edit form talks through: it
// implements domain.ProfileSource and domain.ProfileUpdater against the
// REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"perfil/internal/domain"
	"perfil/internal/errfmt"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (c *Client) FetchCurrent(ctx context.Context) (*domain.ProfileSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profile", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var snapshot domain.ProfileSnapshot
	if err := json.Unmarshal(env.Data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return &snapshot, nil
}

func (c *Client) Update(ctx context.Context, updateReq domain.ProfileUpdateRequest) error {
	body, err := json.Marshal(domain.ProfileFormInput{
		Name:        updateReq.Name,
		OldPassword: updateReq.OldPassword,
		NewPassword: updateReq.NewPassword,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/profile", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = decodeEnvelope(resp)
	return err
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &errfmt.APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &errfmt.APIError{
			Status:  resp.StatusCode,
			Message: env.Message,
		}
	}

	return &env, nil
}

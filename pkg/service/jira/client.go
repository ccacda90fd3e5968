package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
	"github.com/secmon-lab/optsync/pkg/utils/safe"
)

// client implements interfaces.FieldOptionClient against the Context
// Manager project-admin endpoint
type client struct {
	http       *http.Client
	endpoint   string
	token      string
	fieldID    string
	projectKey string
}

var _ interfaces.FieldOptionClient = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.http = c
	}
}

// New creates a client for one custom field in one project
func New(baseURL, token, fieldID, projectKey string, opts ...Option) (interfaces.FieldOptionClient, error) {
	if baseURL == "" {
		return nil, goerr.New("Jira base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid Jira base URL", goerr.V("base_url", baseURL))
	}
	if token == "" {
		return nil, goerr.New("Jira API token is required")
	}
	if fieldID == "" {
		return nil, goerr.New("custom field ID is required")
	}
	if projectKey == "" {
		return nil, goerr.New("project key is required")
	}

	c := &client{
		http:       cleanhttp.DefaultClient(),
		endpoint:   strings.TrimRight(baseURL, "/") + ContextManagerPath,
		token:      token,
		fieldID:    fieldID,
		projectKey: projectKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListOptions uses movePositions with an empty mapping, which the endpoint
// answers with the current option list without reordering anything
func (c *client) ListOptions(ctx context.Context) (model.Options, error) {
	return c.post(ctx, opMovePositions, &moveRequest{
		CustomFieldID: c.fieldID,
		Positions:     model.PositionMap{},
	})
}

func (c *client) AddOption(ctx context.Context, value string, position string) (model.Options, error) {
	return c.post(ctx, opAddOption, &addOptionRequest{
		CustomFieldID: c.fieldID,
		Value:         value,
		Position:      position,
	})
}

func (c *client) SetEnabled(ctx context.Context, id model.OptionID, enabled bool) (model.Options, error) {
	return c.post(ctx, opUpdateEnabled, &updateEnabledRequest{
		CustomFieldID: c.fieldID,
		IsDisabled:    enabled,
		OptionID:      id,
	})
}

func (c *client) Reposition(ctx context.Context, positions model.PositionMap) (model.Options, error) {
	if positions == nil {
		positions = model.PositionMap{}
	}
	return c.post(ctx, opMovePositions, &moveRequest{
		CustomFieldID: c.fieldID,
		Positions:     positions,
	})
}

func (c *client) post(ctx context.Context, op string, body any) (model.Options, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request", goerr.V("op", op))
	}

	reqURL := c.endpoint + "?" + url.Values{
		"op":         {op},
		"projectKey": {c.projectKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("op", op))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("op", op), goerr.V("url", reqURL))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response", goerr.V("op", op), goerr.V("url", reqURL))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.From(ctx).Error("Request failed",
			"url", reqURL,
			"body", string(payload),
			"code", resp.StatusCode,
			"response", string(respBody),
		)
		return nil, goerr.Wrap(ErrUnexpectedStatus, "request failed",
			goerr.V("op", op),
			goerr.V("url", reqURL),
			goerr.V("status", resp.StatusCode),
			goerr.V("response", string(respBody)),
		)
	}

	var decoded response
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response", goerr.V("op", op), goerr.V("response", string(respBody)))
	}
	if len(decoded.Data) == 0 {
		return nil, goerr.Wrap(ErrEmptyResponse, "no data in response", goerr.V("op", op))
	}

	return decoded.Data[0].Context.Values, nil
}

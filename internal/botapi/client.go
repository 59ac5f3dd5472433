package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/notify"
	"go.uber.org/zap"
)

const (
	// DefaultPort is the port the backend dashboard listens on.
	DefaultPort = 5000

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// Client talks to the bot-management backend over its JSON API.
//
// Every call makes exactly one request: failures surface immediately as
// an *APIError and, when a Notifier is attached, as a danger toast.
// Retrying is left to the connectivity monitor, which is the single
// component allowed to poll forever.
type Client struct {
	// BaseURL is the backend base URL (e.g. "http://127.0.0.1:5000").
	BaseURL string

	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client

	// Notifier receives a danger toast for every failed call. Defaults
	// to notify.Nop.
	Notifier notify.Notifier
}

// NewClient creates a client for a backend at host:port.
func NewClient(host string, port int) *Client {
	return NewClientWithURL(fmt.Sprintf("http://%s:%d", host, port))
}

// NewClientWithURL creates a client with a full base URL.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Notifier:   notify.Nop,
	}
}

// SetTimeout sets the HTTP request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Ping checks backend reachability with a HEAD request against the bot
// listing endpoint. The response body is never read. Unlike the other
// calls, a failed ping raises no toast: the connectivity monitor owns
// how probe failures are surfaced.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.BaseURL+"/api/bots", nil)
	if err != nil {
		return &APIError{Type: ErrTypeUnknown, Message: "failed to create ping request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classify("backend unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return nil
}

// ListBots retrieves all bots registered with the backend, keyed by bot
// ID.
func (c *Client) ListBots(ctx context.Context) (map[string]BotInfo, error) {
	var bots map[string]BotInfo
	if err := c.getJSON(ctx, "/api/bots", &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// Status reports the runtime state of a bot.
func (c *Client) Status(ctx context.Context, botID string) (*BotStatus, error) {
	var status BotStatus
	if err := c.getJSON(ctx, "/api/bot/"+botID+"/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Start launches a bot with the given configuration. The backend runs
// at most one bot at a time and reports refusal through the success
// flag.
func (c *Client) Start(ctx context.Context, botID string, config map[string]json.RawMessage, username string) error {
	body := startRequest{Config: config, Username: username}
	if body.Config == nil {
		body.Config = map[string]json.RawMessage{}
	}
	return c.postAck(ctx, "/api/bot/"+botID+"/start", body, "backend refused to start bot "+botID)
}

// Stop terminates a running bot.
func (c *Client) Stop(ctx context.Context, botID string) error {
	return c.postAck(ctx, "/api/bot/"+botID+"/stop", struct{}{}, "backend refused to stop bot "+botID)
}

// Control sends a runtime control action (pause, resume, terminate) to
// a running bot. value is an optional action argument and may be nil.
func (c *Client) Control(ctx context.Context, botID, action string, value any) error {
	body := controlRequest{Action: action, Value: value}
	return c.postAck(ctx, "/api/bot/"+botID+"/control", body, fmt.Sprintf("backend rejected %s for bot %s", action, botID))
}

// GetConfig retrieves the stored configuration values for a bot.
func (c *Client) GetConfig(ctx context.Context, botID string) (map[string]json.RawMessage, error) {
	var config map[string]json.RawMessage
	if err := c.getJSON(ctx, "/api/bot/"+botID+"/config", &config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig uploads configuration values for a bot.
func (c *Client) SaveConfig(ctx context.Context, botID string, config map[string]json.RawMessage) error {
	return c.postAck(ctx, "/api/bot/"+botID+"/config", config, "backend refused configuration for bot "+botID)
}

// LoggingPort asks the backend which port its websocket log stream
// listens on.
func (c *Client) LoggingPort(ctx context.Context) (int, error) {
	var resp loggingPortResponse
	if err := c.getJSON(ctx, "/api/logging/port", &resp); err != nil {
		return 0, err
	}
	return resp.Port, nil
}

// getJSON performs a GET and decodes the JSON response into out. Every
// failure path notifies before returning.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return c.fail(path, &APIError{Type: ErrTypeUnknown, Message: "failed to create GET request", Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return c.fail(path, classify("GET "+path+" failed", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.fail(path, newHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(path, classify("failed to read response body", err))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return c.fail(path, newParseError("failed to parse JSON response", err))
	}

	return nil
}

// postAck performs a POST with a JSON body and checks the uniform
// {"success": bool} acknowledgement.
func (c *Client) postAck(ctx context.Context, path string, body any, refusal string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return c.fail(path, &APIError{Type: ErrTypeUnknown, Message: "failed to encode request body", Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return c.fail(path, &APIError{Type: ErrTypeUnknown, Message: "failed to create POST request", Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return c.fail(path, classify("POST "+path+" failed", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.fail(path, newHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode)))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(path, classify("failed to read response body", err))
	}

	var ack successResponse
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return c.fail(path, newParseError("failed to parse JSON response", err))
	}

	if !ack.Success {
		message := refusal
		if ack.Error != "" {
			message = ack.Error
		}
		return c.fail(path, &APIError{Type: ErrTypeHTTP, Message: message, StatusCode: resp.StatusCode})
	}

	return nil
}

// fail logs the error, raises a danger toast and passes the error back
// to the caller.
func (c *Client) fail(path string, err *APIError) error {
	logging.Warn("api call failed",
		zap.String("path", path),
		zap.String("type", err.Type.String()),
		zap.Error(err))

	if c.Notifier != nil {
		c.Notifier.Notify(ShortMessage(err), notify.LevelDanger)
	}

	return err
}

package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"

	"safety_monitor/internal/models"
)

const (
	requestTimeout = 5 * time.Second
	dialTimeout    = 5 * time.Second
)

// APIClient sends manual SOS requests to the monitor's HTTP API.
type APIClient struct {
	client *resty.Client
}

func NewAPIClient(baseURL string) *APIClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")
	return &APIClient{client: client}
}

type sosResponse struct {
	Notification models.Notification `json:"notification"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *APIClient) SendSOS(ctx context.Context, source string) (models.Notification, error) {
	var (
		out    sosResponse
		errOut apiError
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"source": source}).
		SetResult(&out).
		SetError(&errOut).
		Post("/api/v1/sos")
	if err != nil {
		return models.Notification{}, fmt.Errorf("send sos: %w", err)
	}
	if resp.IsError() {
		if errOut.Error != "" {
			return models.Notification{}, fmt.Errorf("send sos: %s", errOut.Error)
		}
		return models.Notification{}, fmt.Errorf("send sos: unexpected status %d", resp.StatusCode())
	}
	return out.Notification, nil
}

// StreamURL turns the API base URL into the /ws endpoint URL.
func StreamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	q := u.Query()
	q.Set("interval", "1s")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Stream reads envelopes from the live stream and delivers them as tea
// messages on C. C is closed when the connection ends.
type Stream struct {
	conn *websocket.Conn
	C    chan tea.Msg
}

func DialStream(ctx context.Context, wsURL string) (*Stream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	s := &Stream{conn: conn, C: make(chan tea.Msg, 16)}
	go s.read()
	return s, nil
}

func (s *Stream) Close() error {
	return s.conn.Close()
}

func (s *Stream) read() {
	defer close(s.C)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.C <- disconnectedMsg{err: err}
			return
		}
		msg, err := decodeEnvelope(data)
		if err != nil {
			continue
		}
		s.C <- msg
	}
}

// WaitForStream returns a command that blocks for the next stream message.
func WaitForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return disconnectedMsg{}
		}
		return msg
	}
}

var errUnknownEnvelope = errors.New("unknown envelope type")

func decodeEnvelope(data []byte) (tea.Msg, error) {
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case models.EnvelopeState:
		var v models.Dashboard
		err := json.Unmarshal(env.Data, &v)
		return stateMsg(v), err
	case models.EnvelopeAlert:
		var a models.UserAlert
		err := json.Unmarshal(env.Data, &a)
		return alertMsg(a), err
	case models.EnvelopeMap:
		var d models.MapDirective
		err := json.Unmarshal(env.Data, &d)
		return mapMsg(d), err
	case models.EnvelopeNotification:
		var n models.Notification
		err := json.Unmarshal(env.Data, &n)
		return notificationMsg(n), err
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownEnvelope, env.Type)
	}
}

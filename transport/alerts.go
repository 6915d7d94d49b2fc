package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/logger"
)

const alertPath = "/:/websockets/notifications"

// Alert is one server notification. The payload layout varies by type;
// Raw carries the untouched notification object for consumers that need
// the details.
type Alert struct {
	Type string
	Raw  json.RawMessage
}

// alertEnvelope is the wire shape of a notification frame.
type alertEnvelope struct {
	Container struct {
		Type          string            `json:"type"`
		Size          int               `json:"size"`
		Notifications []json.RawMessage `json:"_children"`
	} `json:"NotificationContainer"`
}

// AlertHandler consumes server notifications. Handlers run on the
// listener goroutine; slow handlers delay subsequent alerts.
type AlertHandler func(Alert)

// AlertListener streams server notifications over a websocket.
type AlertListener struct {
	conn    *websocket.Conn
	handler AlertHandler
	done    chan struct{}
}

// Alerts connects the notification websocket and dispatches every alert
// to the handler until the context ends or Stop is called.
func (c *Client) Alerts(ctx context.Context, handler AlertHandler) (*AlertListener, error) {
	endpoint, err := c.alertURL()
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	for k, v := range c.defaultHeaders() {
		header.Set(k, v)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTransport, "connecting notification websocket: %v", err)
	}

	l := &AlertListener{
		conn:    conn,
		handler: handler,
		done:    make(chan struct{}),
	}
	go l.run(ctx)
	return l, nil
}

func (c *Client) alertURL() (string, error) {
	u, err := url.Parse(c.BuildURL(alertPath, true))
	if err != nil {
		return "", errors.Wrap(err, "building alert URL")
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", errors.NewBadRequestf("cannot derive websocket scheme from %q", u.Scheme)
	}
	return u.String(), nil
}

// Stop closes the websocket and waits for the listener goroutine to
// drain.
func (l *AlertListener) Stop() {
	l.conn.Close()
	<-l.done
}

func (l *AlertListener) run(ctx context.Context) {
	defer close(l.done)
	defer l.conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			l.conn.Close()
		case <-l.done:
		}
	}()

	for {
		_, raw, err := l.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Warnw("notification websocket closed", "error", err)
			}
			return
		}

		var env alertEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logger.Debugw("dropping unparseable notification", "error", err)
			continue
		}
		typ := strings.TrimSpace(env.Container.Type)
		if typ == "" {
			continue
		}
		l.handler(Alert{Type: typ, Raw: json.RawMessage(raw)})
	}
}

// WaitStopped blocks until the listener goroutine has exited or the
// timeout elapses.
func (l *AlertListener) WaitStopped(timeout time.Duration) bool {
	select {
	case <-l.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

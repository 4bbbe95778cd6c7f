// Package video adapts the externally hosted Jitsi meeting widget. The
// client cannot embed a browser widget directly, so it serves a minimal
// local page that loads the widget's external script and mounts it with
// the room and display-name metadata; Close releases the underlying
// connection the way the original page disposes the widget on unmount.
package video

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var pageTmpl = template.Must(template.New("consult").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Consultation</title>
  <script src="https://{{.Domain}}/external_api.js"></script>
  <style>html, body, #meet { height: 100%; width: 100%; margin: 0; }</style>
</head>
<body>
  <div id="meet"></div>
  <script>
    const api = new JitsiMeetExternalAPI({{.Domain}}, {
      roomName: {{.Room}},
      parentNode: document.querySelector('#meet'),
      userInfo: { displayName: {{.DisplayName}} },
      configOverwrite: {
        startWithAudioMuted: false,
        startWithVideoMuted: false,
      },
    });
    window.addEventListener('beforeunload', () => api.dispose());
  </script>
</body>
</html>
`))

// Consult is one video consultation: a local page that mounts the
// remote widget for a single room.
type Consult struct {
	domain      string
	room        string
	displayName string

	mu sync.Mutex
	e  *echo.Echo
}

// NewConsult prepares a consultation on the given signaling domain. An
// empty room gets a generated UUID room name so both parties can share
// it out of band.
func NewConsult(domain, room, displayName string) *Consult {
	if room == "" {
		room = uuid.NewString()
	}
	if displayName == "" {
		displayName = "Patient"
	}
	return &Consult{domain: domain, room: room, displayName: displayName}
}

// Room returns the room name in use.
func (c *Consult) Room() string { return c.room }

// Start serves the consultation page on addr (host:port, port 0 picks a
// free one) and returns the page URL.
func (c *Consult) Start(addr string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.e != nil {
		return "", fmt.Errorf("consultation already started")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/", c.page)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", addr, err)
	}
	e.Listener = listener
	c.e = e

	go func() {
		if err := e.Start(""); err != nil && err != http.ErrServerClosed {
			e.Logger.Error(err)
		}
	}()

	return fmt.Sprintf("http://%s/", listener.Addr().String()), nil
}

func (c *Consult) page(ec echo.Context) error {
	ec.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return pageTmpl.Execute(ec.Response(), map[string]string{
		"Domain":      c.domain,
		"Room":        c.room,
		"DisplayName": c.displayName,
	})
}

// Close shuts the page server down, releasing the widget's mount point.
func (c *Consult) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.e == nil {
		return nil
	}
	err := c.e.Shutdown(ctx)
	c.e = nil
	return err
}

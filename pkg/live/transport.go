package live

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

type (
	//Conn is one open live feed connection
	Conn interface {
		// ReadMessage blocks until the next message arrives. Any error
		// means the connection is gone.
		ReadMessage() ([]byte, error)
		Close() error
	}

	//Dialer opens live feed connections. Dial returns once the server
	//has acknowledged the connection.
	Dialer interface {
		Dial(ctx context.Context, url string) (Conn, error)
	}

	//WebsocketDialer connects to the live feed over websocket
	WebsocketDialer struct {
		Dialer *websocket.Dialer
	}

	wsConn struct {
		conn *websocket.Conn
	}
)

//NewWebsocketDialer returns a dialer using gorilla's default settings
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{Dialer: websocket.DefaultDialer}
}

//Dial performs the websocket handshake against url
func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.Dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake with %s failed with status %d: %w", url, resp.StatusCode, err)
		}
		return nil, err
	}
	return &wsConn{conn: conn}, nil
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

package live

import (
	"context"
	"sync"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/resources"
	log "github.com/sirupsen/logrus"
)

//Status is the state of the live feed connection
type Status int

const (
	//Disconnected is the initial state and the state after any close
	Disconnected Status = iota
	//Connected means a connection is open and being read
	Connected
)

func (s Status) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

type (
	// Sink receives the output of the live feed. Calls are serialized with
	// the controller's transitions, so a Sink must not call back into the
	// Controller.
	Sink interface {
		OnLiveResult(classification.Result)
		OnLiveStatus(Status)
	}

	// Controller owns at most one live feed connection at a time and
	// drives the disconnected/connected state machine.
	Controller struct {
		dialer Dialer
		url    string
		sink   Sink
		log    *log.Entry

		mu      sync.Mutex
		status  Status
		dialing bool
		conn    Conn
		// generation changes whenever a connection is superseded so that a
		// stale read loop or dial never touches the current state
		generation uint64
		done       chan struct{}
	}
)

//NewController creates a controller for the configured live endpoint
func NewController(res *resources.Resources, dialer Dialer, sink Sink) *Controller {
	done := make(chan struct{})
	close(done)
	return &Controller{
		dialer: dialer,
		url:    res.Config.R.Backend.LiveURL.String(),
		sink:   sink,
		log:    res.Logger(),
		done:   done,
	}
}

//Status returns the current connection state
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

//Done returns a channel closed when the latest connection's read loop exits
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Start opens the live feed. It is a no-op while connected or while
// another Start is dialing. A dial error leaves the controller
// disconnected.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.status == Connected || c.dialing {
		c.mu.Unlock()
		return nil
	}
	c.dialing = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	conn, err := c.dialer.Dial(ctx, c.url)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Stop was called while the handshake was in flight
	if gen != c.generation {
		if err == nil {
			conn.Close()
		}
		return err
	}
	c.dialing = false

	if err != nil {
		c.log.WithFields(log.Fields{
			"error": err.Error(),
			"url":   c.url,
		}).Error("Could not open live feed")
		return err
	}

	c.conn = conn
	c.status = Connected
	c.done = make(chan struct{})
	c.sink.OnLiveStatus(Connected)
	c.log.WithField("url", c.url).Info("Live feed connected")

	go c.read(gen, conn, c.done)
	return nil
}

// Stop closes the active connection, if any, and always leaves the
// controller disconnected. Without a connection no transport call is made.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a pending handshake is abandoned, the next Start dials again
	c.generation++
	c.dialing = false
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.log.WithField("error", err.Error()).Warn("Error closing live feed")
		}
		c.conn = nil
		c.log.Info("Live feed stopped")
	}
	c.status = Disconnected
	c.sink.OnLiveStatus(Disconnected)
}

func (c *Controller) read(gen uint64, conn Conn, done chan struct{}) {
	defer close(done)

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.closed(gen, err)
			return
		}

		res, err := classification.Decode(data)
		if err != nil {
			c.log.WithFields(log.Fields{
				"error":   err.Error(),
				"message": truncate(data, 128),
			}).Warn("Dropping unparsable live message")
			continue
		}

		c.mu.Lock()
		if gen == c.generation {
			c.sink.OnLiveResult(res)
		}
		c.mu.Unlock()
	}
}

// closed handles a connection ended by the server or the network
func (c *Controller) closed(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}

	c.conn.Close()
	c.conn = nil
	c.status = Disconnected
	c.sink.OnLiveStatus(Disconnected)
	c.log.WithField("reason", err.Error()).Info("Live feed closed")
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}

package ipc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	picker "github.com/omnirec/picker"
)

// connectTimeout bounds connection establishment.
const connectTimeout = 3 * time.Second

// readStallTimeout bounds each individual read stall, not the whole message:
// a slowly trickling response resets the clock on every chunk. Variable so
// tests can shorten it.
var readStallTimeout = 5 * time.Second

// Client is a connection to the omnirec service. One connection serves both
// Query and StoreToken, used sequentially; it is never shared across
// goroutines or reused across processes.
type Client struct {
	conn net.Conn
	br   *bufio.Reader
}

// Dial connects to the service socket at the given path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, connectTimeout)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("connect to %s: %w", path, ErrConnectTimeout)
		}
		return nil, fmt.Errorf("connect to %s (is the service running?): %w", path, err)
	}
	return &Client{conn: conn, br: bufio.NewReader(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Query sends a query_selection request and reads exactly one response frame.
func (c *Client) Query() (*picker.Response, error) {
	body, err := c.roundTrip(picker.QuerySelection())
	if err != nil {
		return nil, err
	}
	return DecodeResponse(body), nil
}

// StoreToken sends a store_token request. A token_stored response is success;
// an error response is a failure carrying the service's message; any other
// tag is a failure with a generic message.
func (c *Client) StoreToken(token string) error {
	body, err := c.roundTrip(picker.StoreToken(token))
	if err != nil {
		return err
	}
	resp := DecodeResponse(body)
	switch resp.Type {
	case picker.TypeTokenStored:
		return nil
	case picker.TypeError:
		return fmt.Errorf("store token: %s", resp.Message)
	default:
		return fmt.Errorf("store token: unexpected response type %q", resp.Type)
	}
}

// ValidateToken asks the service whether a previously issued token is still
// valid.
func (c *Client) ValidateToken(token string) (bool, error) {
	body, err := c.roundTrip(picker.ValidateToken(token))
	if err != nil {
		return false, err
	}
	resp := DecodeResponse(body)
	switch resp.Type {
	case picker.TypeTokenValid:
		return true, nil
	case picker.TypeTokenInvalid:
		return false, nil
	case picker.TypeError:
		return false, fmt.Errorf("validate token: %s", resp.Message)
	default:
		return false, fmt.Errorf("validate token: unexpected response type %q", resp.Type)
	}
}

// roundTrip writes one request frame and reads one response body.
func (c *Client) roundTrip(req *picker.Request) ([]byte, error) {
	frame, err := EncodeFrame(req)
	if err != nil {
		return nil, err
	}
	if _, err := c.conn.Write(frame); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	return c.readFrame()
}

// readFrame reads the length prefix, enforces the size ceiling before the
// body is read, and then reads the body.
func (c *Client) readFrame() ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if err := c.readFull(header); err != nil {
		return nil, fmt.Errorf("read response length: %w", err)
	}

	length := binary.LittleEndian.Uint32(header)
	if length > MaxFrameSize {
		return nil, fmt.Errorf("response declares %d bytes: %w", length, ErrOversizedFrame)
	}

	body := make([]byte, length)
	if err := c.readFull(body); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// readFull accumulates exactly len(buf) bytes using a partial-read loop. The
// read deadline is only re-armed when no buffered bytes are available, so
// data that has already arrived never resets the stall clock.
func (c *Client) readFull(buf []byte) error {
	off := 0
	for off < len(buf) {
		if c.br.Buffered() == 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(readStallTimeout)); err != nil {
				return err
			}
		}
		n, err := c.br.Read(buf[off:])
		off += n
		if off == len(buf) {
			// A reader may deliver the final bytes together with an error;
			// the message is complete either way.
			return nil
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return ErrReadTimeout
			}
			// EOF or a reset mid-message means the service went away.
			return fmt.Errorf("%w: %v", ErrUnexpectedClose, err)
		}
		if n == 0 {
			return ErrUnexpectedClose
		}
	}
	return nil
}

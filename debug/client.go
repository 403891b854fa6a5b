package debug

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrNoServer is returned by Discover when no server socket is found.
var ErrNoServer = errors.New("debug: no running server found")

// DefaultTimeout bounds dialing and each call.
const DefaultTimeout = 5 * time.Second

// Client sends requests to a Server. A Client is safe for concurrent use;
// calls are serialized on one connection.
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader
	nextID  uint64
	timeout time.Duration
	path    string
}

// Dial connects to the server at path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("debug: dial %s: %w", path, err)
	}
	return &Client{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		nextID:  1,
		timeout: DefaultTimeout,
		path:    path,
	}, nil
}

// Discover connects to the most recently started server in SocketDir.
func Discover() (*Client, error) {
	paths, err := FindSockets(SocketDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w (no %s*%s in %s)", ErrNoServer, SocketPrefix, SocketSuffix, SocketDir)
	}

	var errs []error
	for _, p := range paths {
		c, err := Dial(p)
		if err == nil {
			return c, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoServer, errors.Join(errs...))
}

// FindSockets lists server sockets in dir, newest first.
func FindSockets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("debug: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var found []candidate
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, SocketPrefix) || !strings.HasSuffix(name, SocketSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&os.ModeSocket == 0 {
			continue
		}
		found = append(found, candidate{filepath.Join(dir, name), info.ModTime()})
	}
	slices.SortFunc(found, func(a, b candidate) int {
		return b.modTime.Compare(a.modTime)
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}

// Path returns the socket the client is connected to.
func (c *Client) Path() string {
	return c.path
}

// SetTimeout changes the per-call deadline. Zero disables it.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// Call sends method with params (nil for none) and returns the raw result.
// A server-side failure is returned as an *Error.
func (c *Client) Call(method string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := Request{Method: method, ID: c.nextID}
	c.nextID++
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("debug: encode params: %w", err)
		}
		req.Params = raw
	}
	line, err := json.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("debug: encode request: %w", err)
	}
	line = append(line, '\n')

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	} else {
		_ = c.conn.SetDeadline(time.Time{})
	}
	if _, err := c.conn.Write(line); err != nil {
		return nil, fmt.Errorf("debug: send %s: %w", method, err)
	}
	reply, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("debug: receive %s: %w", method, err)
	}

	var resp Response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return nil, fmt.Errorf("debug: decode response: %w", err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("debug: response id %d does not match request %d", resp.ID, req.ID)
	}
	return resp.Result, nil
}

// CallInto is Call followed by decoding the result into out.
func (c *Client) CallInto(method string, params, out any) error {
	raw, err := c.Call(method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("debug: decode %s result: %w", method, err)
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

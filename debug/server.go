package debug

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/scene"
)

// Socket naming. Servers listen on SocketDir/SocketPrefix<pid>SocketSuffix.
const (
	SocketDir    = "/tmp"
	SocketPrefix = "gesso-debug-"
	SocketSuffix = ".sock"
)

// maxRequestSize bounds one request line.
const maxRequestSize = 1 << 20

// DefaultSocketPath returns the socket path for the current process.
func DefaultSocketPath() string {
	return filepath.Join(SocketDir, SocketPrefix+strconv.Itoa(os.Getpid())+SocketSuffix)
}

// Server answers debug requests for one scene. The host calls UpdateScene
// and ApplyOverlays from its render loop; connections are served on
// background goroutines.
type Server struct {
	listener   net.Listener
	socketPath string
	closed     atomic.Bool
	wg         sync.WaitGroup
	conns      map[net.Conn]struct{}
	connsMu    sync.Mutex

	mu       sync.Mutex
	snapshot *Snapshot
	overlays overlaySet
}

// NewServer listens on DefaultSocketPath.
func NewServer() (*Server, error) {
	return Listen(DefaultSocketPath())
}

// Listen starts a server on the Unix socket at path, replacing any stale
// socket file left there.
func Listen(path string) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("debug: remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("debug: listen on %s: %w", path, err)
	}

	s := &Server{
		listener:   listener,
		socketPath: path,
		conns:      make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()

	gesso.Logger().Info("debug server listening", "socket", path)
	return s, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// UpdateScene replaces the snapshot served to clients.
func (s *Server) UpdateScene(snap Snapshot) {
	s.mu.Lock()
	s.snapshot = &snap
	s.mu.Unlock()
}

// ApplyOverlays pushes the current overlays onto sc, after its own quads.
func (s *Server) ApplyOverlays(sc *scene.Scene) {
	for _, o := range s.Overlays() {
		sc.PushQuad(o.Quad())
	}
}

// Overlays returns a copy of the current overlays.
func (s *Server) Overlays() []Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlays.list()
}

// Close stops accepting connections, closes open ones, and removes the
// socket file. Close is idempotent.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.listener.Close()

	s.connsMu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.connsMu.Unlock()

	s.wg.Wait()

	if rmErr := os.Remove(s.socketPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		err = errors.Join(err, rmErr)
	}
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				gesso.Logger().Warn("debug server accept failed", "error", err)
			}
			return
		}

		s.connsMu.Lock()
		if s.closed.Load() {
			s.connsMu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.connsMu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		_ = conn.Close()
		s.connsMu.Lock()
		delete(s.conns, conn)
		s.connsMu.Unlock()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxRequestSize)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp = errorResponse(0, CodeParseError, "parse error: %v", err)
		} else {
			resp = s.dispatch(&req)
		}

		if err := writeResponse(w, &resp); err != nil {
			if !s.closed.Load() {
				gesso.Logger().Warn("debug server write failed", "error", err)
			}
			return
		}
	}
}

func writeResponse(w *bufio.Writer, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func (s *Server) dispatch(req *Request) Response {
	switch req.Method {
	case MethodStats:
		snap := s.currentSnapshot()
		if snap == nil {
			return errNoSnapshot(req.ID)
		}
		return resultResponse(req.ID, snap.Stats())
	case MethodQuads:
		snap := s.currentSnapshot()
		if snap == nil {
			return errNoSnapshot(req.ID)
		}
		return resultResponse(req.ID, snap.Quads)
	case MethodDrawQuad:
		return s.handleDrawQuad(req)
	case MethodRemove:
		return s.handleRemove(req)
	case MethodClear:
		s.mu.Lock()
		n := s.overlays.clear()
		s.mu.Unlock()
		return resultResponse(req.ID, map[string]int{"cleared": n})
	case MethodList:
		return resultResponse(req.ID, s.Overlays())
	case MethodScreenshot, MethodScreenshotAlias:
		return s.handleScreenshot(req)
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "method not found: %s", req.Method)
	}
}

func (s *Server) currentSnapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func errNoSnapshot(id uint64) Response {
	return errorResponse(id, CodeServerError, "no scene snapshot available yet")
}

// DrawQuadParams are the debug.draw_quad parameters. Missing geometry
// defaults to a 100x100 quad at the origin, a missing color to opaque red.
type DrawQuadParams struct {
	X            *float32  `json:"x,omitempty"`
	Y            *float32  `json:"y,omitempty"`
	W            *float32  `json:"w,omitempty"`
	H            *float32  `json:"h,omitempty"`
	Color        []float32 `json:"color,omitempty"`
	BorderColor  []float32 `json:"border_color,omitempty"`
	BorderWidth  float32   `json:"border_width,omitempty"`
	CornerRadius float32   `json:"corner_radius,omitempty"`
}

func (p *DrawQuadParams) overlay() Overlay {
	o := Overlay{
		X:            valueOr(p.X, 0),
		Y:            valueOr(p.Y, 0),
		W:            valueOr(p.W, 100),
		H:            valueOr(p.H, 100),
		Color:        ColorInfo{R: 1, A: 1},
		BorderWidth:  p.BorderWidth,
		CornerRadius: p.CornerRadius,
	}
	if len(p.Color) >= 4 {
		o.Color = ColorInfo{R: p.Color[0], G: p.Color[1], B: p.Color[2], A: p.Color[3]}
	}
	if len(p.BorderColor) >= 4 {
		o.BorderColor = ColorInfo{R: p.BorderColor[0], G: p.BorderColor[1], B: p.BorderColor[2], A: p.BorderColor[3]}
	}
	return o
}

func valueOr(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

func (s *Server) handleDrawQuad(req *Request) Response {
	if !hasParams(req.Params) {
		return errorResponse(req.ID, CodeInvalidParams, "%s requires params: {x, y, w, h, color: [r, g, b, a]}", req.Method)
	}
	var p DrawQuadParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "%s: %v", req.Method, err)
	}

	s.mu.Lock()
	id := s.overlays.add(p.overlay())
	s.mu.Unlock()
	return resultResponse(req.ID, map[string]uint64{"id": id})
}

// RemoveParams are the debug.remove parameters.
type RemoveParams struct {
	ID *uint64 `json:"id"`
}

func (s *Server) handleRemove(req *Request) Response {
	var p RemoveParams
	if hasParams(req.Params) {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errorResponse(req.ID, CodeInvalidParams, "%s: %v", req.Method, err)
		}
	}
	if p.ID == nil {
		return errorResponse(req.ID, CodeInvalidParams, "%s requires an \"id\" parameter", req.Method)
	}

	s.mu.Lock()
	removed := s.overlays.remove(*p.ID)
	s.mu.Unlock()
	return resultResponse(req.ID, map[string]bool{"removed": removed})
}

// ScreenshotParams are the debug.screenshot parameters. Width and height
// are optional.
type ScreenshotParams struct {
	Path   string `json:"path"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (s *Server) handleScreenshot(req *Request) Response {
	var p ScreenshotParams
	if hasParams(req.Params) {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errorResponse(req.ID, CodeInvalidParams, "%s: %v", req.Method, err)
		}
	}
	if p.Path == "" {
		return errorResponse(req.ID, CodeInvalidParams, "%s requires a \"path\" parameter", req.Method)
	}
	if !validImageSize(p.Width, p.Height) {
		return errorResponse(req.ID, CodeInvalidParams, "%s: width and height must be between 0 and %d", req.Method, MaxImageSize)
	}

	snap := s.currentSnapshot()
	if snap == nil {
		return errNoSnapshot(req.ID)
	}
	if err := Screenshot(snap, s.Overlays(), p.Path, p.Width, p.Height); err != nil {
		return errorResponse(req.ID, CodeServerError, "screenshot failed: %v", err)
	}
	return resultResponse(req.ID, map[string]string{"path": p.Path})
}

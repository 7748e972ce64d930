package goMetrics

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MrEthical07/goMetrics/internal/route"
	"github.com/MrEthical07/goMetrics/internal/state"
	"github.com/MrEthical07/goMetrics/internal/urlpath"
	"github.com/google/uuid"
)

// Server defines a public type used by goMetrics APIs.
//
// Server instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Server struct {
	cfg    Config
	id     string
	shared *state.Shared
	log    *logDispatcher

	mu      sync.Mutex
	loop    *loopHandle
	stopped bool
}

// loopHandle is the at-most-one live handle to a serving loop. The fault field
// is written by the loop goroutine before done is closed and read only after
// done is observed closed.
type loopHandle struct {
	done  chan struct{}
	fault error
}

func (h *loopHandle) finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(addr string) (*Server, error) {
	return NewBuilder().WithAddress(addr).Build()
}

// NewTLS describes the newtls operation and its observable behavior.
//
// NewTLS may return an error when input validation, dependency calls, or security checks fail.
// NewTLS does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewTLS(addr string, certPEM, keyPEM []byte) (*Server, error) {
	return NewBuilder().WithAddress(addr).WithTLS(certPEM, keyPEM).Build()
}

// MustHTTP is a convenience constructor that panics when the server cannot be
// created. Documented shortcut: production callers wanting recoverable error
// handling use [New].
func MustHTTP(addr string) *Server {
	s, err := New(addr)
	if err != nil {
		panic(err)
	}
	return s
}

// MustHTTPS is the encrypted-transport counterpart of [MustHTTP]. It panics
// when the address cannot be bound or the certificate/key pair is malformed.
func MustHTTPS(addr string, certPEM, keyPEM []byte) *Server {
	s, err := NewTLS(addr, certPEM, keyPEM)
	if err != nil {
		panic(err)
	}
	return s
}

// Addr returns the listener's bound address. Useful when constructed with
// port 0.
func (s *Server) Addr() net.Addr {
	return s.shared.Addr()
}

// Update replaces the served buffer wholesale and returns the number of bytes
// written. It never fails: before Serve, during serving, and after Stop it
// behaves identically (a post-Stop update simply has no observer).
func (s *Server) Update(body []byte) int {
	return s.shared.Replace(body)
}

// Serve starts the background serving loop at the configured path. Idempotent:
// a call while a loop is live is a no-op and never spawns a second loop.
func (s *Server) Serve() {
	s.ServeAt(s.cfg.Server.Path)
}

// ServeAt is [Server.Serve] with a caller-supplied path, normalized once here.
// An unusable path falls back to /metrics with a warning event.
func (s *Server) ServeAt(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.loop != nil && !s.loop.finished() {
		return
	}

	target, ok := urlpath.Normalize(path)
	if !ok {
		s.emit(RequestLogEvent{
			Level:   LevelWarn,
			Path:    path,
			Message: "unusable serve path, falling back to " + urlpath.Default,
		})
	}

	h := &loopHandle{done: make(chan struct{})}
	s.loop = h
	go s.run(h, target)
}

// Stop raises the stop signal, unblocks the pending accept, and waits for the
// loop to exit. It returns a [*StopError] only when the loop terminated through
// an internal fault; a server whose loop never ran stops trivially. Safe to
// call more than once.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	h := s.loop
	s.loop = nil
	s.mu.Unlock()

	s.shared.RequestStop()
	_ = s.shared.Unblock()

	var fault error
	if h != nil {
		<-h.done
		fault = h.fault
	}

	s.log.Close()

	if fault != nil {
		return &StopError{Err: fault}
	}
	return nil
}

// LogDropped reports how many diagnostic events were dropped under
// backpressure.
func (s *Server) LogDropped() uint64 {
	return s.log.Dropped()
}

// run is the background loop: blocking accept, one request at a time, until
// the stop signal is observed.
func (s *Server) run(h *loopHandle, target string) {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			h.fault = fmt.Errorf("serving loop fault: %v", r)
		}
	}()

	for {
		conn, err := s.shared.Accept()

		// Stop is checked before dispatch so an unblocked accept exits
		// promptly instead of answering the in-flight item.
		if s.shared.Stopping() {
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.emit(RequestLogEvent{
				Level:   LevelError,
				Message: "accept failed",
				Error:   err.Error(),
			})
			continue
		}

		s.handle(conn, target)
	}
}

// handle answers exactly one request on conn and closes it. All failures are
// diagnostic-only; the loop always proceeds to the next request.
func (s *Server) handle(conn net.Conn, target string) {
	defer conn.Close()

	requestID := uuid.NewString()
	remote := conn.RemoteAddr().String()

	req, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		s.emit(RequestLogEvent{
			Level:      LevelError,
			RequestID:  requestID,
			RemoteAddr: remote,
			Message:    "malformed request",
			Error:      err.Error(),
		})
		return
	}
	defer req.Body.Close()

	out := route.Decide(req.Method, req.URL.Path, target, s.shared)

	resp := &http.Response{
		StatusCode:    out.Status,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Request:       req,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(out.Body)),
		ContentLength: int64(len(out.Body)),
		Close:         true,
	}
	if out.Status == http.StatusOK {
		resp.Header.Set("Content-Type", ContentType)
	}

	event := RequestLogEvent{
		Level:      LevelDebug,
		RequestID:  requestID,
		Method:     req.Method,
		Path:       req.URL.Path,
		RemoteAddr: remote,
		Status:     out.Status,
		Message:    "request handled",
	}
	if err := resp.Write(conn); err != nil {
		event.Level = LevelError
		event.Message = "response write failed"
		event.Error = err.Error()
	}
	s.emit(event)
}

func (s *Server) emit(event RequestLogEvent) {
	event.Timestamp = time.Now().UTC()
	event.ServerID = s.id
	s.log.Emit(context.Background(), event)
}

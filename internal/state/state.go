package state

import (
	"net"
	"sync"
	"sync/atomic"
)

// Shared is the state jointly owned by a server handle and its serving loop:
// the metrics buffer, the stop flag, and the bound listener. Its lifetime is
// the longest of the two owners.
type Shared struct {
	mu     sync.Mutex
	buffer []byte

	stop atomic.Bool

	listener net.Listener
}

// New wraps an already-bound listener. The listener is owned by the returned
// Shared for the lifetime of the server and is never handed out.
func New(ln net.Listener) *Shared {
	return &Shared{listener: ln}
}

// Replace overwrites the buffer wholesale with a copy of b and returns the
// number of bytes written. It never fails and is safe from any goroutine,
// before the loop starts and after it stops.
func (s *Shared) Replace(b []byte) int {
	next := append([]byte(nil), b...)

	s.mu.Lock()
	s.buffer = next
	s.mu.Unlock()

	return len(next)
}

// Snapshot returns a copy of the buffer taken inside the critical section.
// The lock is released before the caller performs any network I/O, so a slow
// client write cannot stall Replace.
func (s *Shared) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buffer...)
}

// RequestStop raises the stop flag. The flag is monotonic: once raised it is
// never reset.
func (s *Shared) RequestStop() {
	s.stop.Store(true)
}

// Stopping reports whether the stop flag has been raised.
func (s *Shared) Stopping() bool {
	return s.stop.Load()
}

// Accept blocks until the next inbound connection or until Unblock is called.
func (s *Shared) Accept() (net.Conn, error) {
	return s.listener.Accept()
}

// Unblock closes the listener, forcing an in-progress Accept to return
// immediately. Used to make shutdown responsive.
func (s *Shared) Unblock() error {
	return s.listener.Close()
}

// Addr returns the listener's bound address.
func (s *Shared) Addr() net.Addr {
	return s.listener.Addr()
}

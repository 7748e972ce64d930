package goMetrics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	return s
}

func serverURL(s *Server, path string) string {
	return fmt.Sprintf("http://%s%s", s.Addr().String(), path)
}

func httpGet(t *testing.T, url string) (int, []byte) {
	t.Helper()

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	return res.StatusCode, body
}

func TestNewInvalidAddress(t *testing.T) {
	_, err := New("invalid:99999999")
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}

	var ce *CreateError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CreateError, got %T: %v", err, err)
	}
}

func TestNewEmptyAddress(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("expected ErrEmptyAddress, got %v", err)
	}
}

func TestServeEmptyBodyBeforeUpdate(t *testing.T) {
	s := newTestServer(t)
	s.Serve()

	status, body := httpGet(t, serverURL(s, "/metrics"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %v", body)
	}
}

func TestUpdateThenGet(t *testing.T) {
	s := newTestServer(t)
	s.Serve()

	payload := []byte{1, 2, 3, 4}
	if n := s.Update(payload); n != 4 {
		t.Fatalf("Update returned %d, want 4", n)
	}

	status, body := httpGet(t, serverURL(s, "/metrics"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !bytes.Equal(body, payload) {
		t.Fatalf("body = %v, want %v", body, payload)
	}
}

func TestUpdateReplacesWholesale(t *testing.T) {
	s := newTestServer(t)
	s.Serve()

	for i := 0; i < 3; i++ {
		payload := []byte{byte(i)}
		if n := s.Update(payload); n != 1 {
			t.Fatalf("Update returned %d, want 1", n)
		}

		status, body := httpGet(t, serverURL(s, "/metrics"))
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if !bytes.Equal(body, payload) {
			t.Fatalf("body = %v, want %v", body, payload)
		}
	}
}

func TestUpdateIdempotentInEffect(t *testing.T) {
	s := newTestServer(t)
	s.Serve()

	payload := []byte("same bytes")
	s.Update(payload)
	s.Update(payload)

	_, body := httpGet(t, serverURL(s, "/metrics"))
	if !bytes.Equal(body, payload) {
		t.Fatalf("body = %q, want %q", body, payload)
	}
}

func TestContentTypeOnSuccess(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Update([]byte("x 1\n"))

	res, err := http.Get(serverURL(s, "/metrics"))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer res.Body.Close()

	if got := res.Header.Get("Content-Type"); got != ContentType {
		t.Fatalf("Content-Type = %q, want %q", got, ContentType)
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Update([]byte{1})

	status, body := httpGet(t, serverURL(s, "/metricsssss"))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Update([]byte{1})

	res, err := http.Post(serverURL(s, "/metrics"), "text/plain", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %v", body)
	}
}

func TestRequestPathCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Update([]byte("ok"))

	status, body := httpGet(t, serverURL(s, "/METRICS"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if string(body) != "ok" {
		t.Fatalf("body = %q, want %q", body, "ok")
	}
}

func TestServeAtNormalizesPath(t *testing.T) {
	s := newTestServer(t)
	s.ServeAt(" STATS ")
	s.Update([]byte("ok"))

	status, _ := httpGet(t, serverURL(s, "/stats"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	status, _ = httpGet(t, serverURL(s, "/metrics"))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for old default path", status)
	}
}

func TestServeAtUnusablePathFallsBackToDefault(t *testing.T) {
	sink := NewChannelSink(8)
	s, err := NewBuilder().WithAddress("127.0.0.1:0").WithLogSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	s.ServeAt("/bad\x00path")
	s.Update([]byte("ok"))

	status, _ := httpGet(t, serverURL(s, "/metrics"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 on fallback path", status)
	}

	select {
	case event := <-sink.Events():
		if event.Level != LevelWarn {
			t.Fatalf("expected warn event, got %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a warning event for unusable path")
	}
}

func TestServeIdempotent(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Serve()
	s.ServeAt("/elsewhere")

	s.Update([]byte("ok"))

	// The first loop still owns the listener and the original path.
	status, _ := httpGet(t, serverURL(s, "/metrics"))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	status, _ = httpGet(t, serverURL(s, "/elsewhere"))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: second Serve must not take effect", status)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestStopWithoutServe(t *testing.T) {
	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop without Serve failed: %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Serve()

	if err := s.Stop(); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

func TestStopUnblocksPromptly(t *testing.T) {
	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Serve()

	done := make(chan error, 1)
	go func() { done <- s.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Stop failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not unblock the accept loop")
	}
}

func TestUpdateAfterStop(t *testing.T) {
	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Serve()
	addr := s.Addr().String()

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if n := s.Update([]byte{1, 2, 3}); n != 3 {
		t.Fatalf("Update after Stop returned %d, want 3", n)
	}

	if _, err := http.Get("http://" + addr + "/metrics"); err == nil {
		t.Fatal("expected GET after Stop to fail")
	}
}

func TestServeAfterStopNoOp(t *testing.T) {
	s, err := New("127.0.0.1:0")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Serve()
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	s.Serve()
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop after no-op Serve failed: %v", err)
	}
}

func TestConcurrentUpdatesNeverCorruptResponses(t *testing.T) {
	s := newTestServer(t)
	s.Serve()
	s.Update(bytes.Repeat([]byte{1}, 64))

	const writers = 4
	const perW = 200
	const payload = 64

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		fill := byte(i + 1)
		go func() {
			defer wg.Done()
			body := bytes.Repeat([]byte{fill}, payload)
			for j := 0; j < perW; j++ {
				s.Update(body)
			}
		}()
	}

	url := serverURL(s, "/metrics")
	for i := 0; i < 50; i++ {
		status, body := httpGet(t, url)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(body) != payload {
			t.Fatalf("partial body observed: %d bytes", len(body))
		}
		for _, b := range body {
			if b != body[0] {
				t.Fatalf("spliced body observed: %v", body)
			}
		}
	}

	wg.Wait()
}

func TestRequestLogEvents(t *testing.T) {
	sink := NewChannelSink(8)
	s, err := NewBuilder().WithAddress("127.0.0.1:0").WithLogSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	s.Serve()
	s.Update([]byte("ok"))
	httpGet(t, serverURL(s, "/metrics"))

	select {
	case event := <-sink.Events():
		if event.Method != http.MethodGet {
			t.Fatalf("event method = %q, want GET", event.Method)
		}
		if event.Path != "/metrics" {
			t.Fatalf("event path = %q, want /metrics", event.Path)
		}
		if event.Status != http.StatusOK {
			t.Fatalf("event status = %d, want 200", event.Status)
		}
		if event.RequestID == "" || event.ServerID == "" {
			t.Fatalf("expected request and server ids, got %+v", event)
		}
		if event.RemoteAddr == "" {
			t.Fatalf("expected remote address, got %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a request log event")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder().WithAddress("127.0.0.1:0")

	s, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if _, err := b.Build(); !errors.Is(err, ErrBuilderReused) {
		t.Fatalf("expected ErrBuilderReused, got %v", err)
	}
}

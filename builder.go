package goMetrics

import (
	"crypto/tls"
	"net"

	"github.com/MrEthical07/goMetrics/internal/state"
	"github.com/google/uuid"
)

// Builder defines a public type used by goMetrics APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	sink   LogSink

	built bool
}

// NewBuilder describes the newbuilder operation and its observable behavior.
//
// NewBuilder does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewBuilder() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithAddress describes the withaddress operation and its observable behavior.
//
// WithAddress does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAddress(addr string) *Builder {
	b.config.Server.Address = addr
	return b
}

// WithPath describes the withpath operation and its observable behavior.
//
// WithPath does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPath(path string) *Builder {
	b.config.Server.Path = path
	return b
}

// WithTLS describes the withtls operation and its observable behavior.
//
// WithTLS does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTLS(certPEM, keyPEM []byte) *Builder {
	b.config.Server.TLS = TLSConfig{
		CertPEM: append([]byte(nil), certPEM...),
		KeyPEM:  append([]byte(nil), keyPEM...),
	}
	return b
}

// WithRequestLog describes the withrequestlog operation and its observable behavior.
//
// WithRequestLog does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRequestLog(enabled bool) *Builder {
	b.config.RequestLog.Enabled = enabled
	return b
}

// WithRequestLogBuffer describes the withrequestlogbuffer operation and its observable behavior.
//
// WithRequestLogBuffer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRequestLogBuffer(size int, dropIfFull bool) *Builder {
	b.config.RequestLog.BufferSize = size
	b.config.RequestLog.DropIfFull = dropIfFull
	return b
}

// WithLogSink describes the withlogsink operation and its observable behavior.
//
// WithLogSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLogSink(sink LogSink) *Builder {
	b.sink = sink
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Server, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, &CreateError{Addr: cfg.Server.Address, Err: err}
	}

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return nil, &CreateError{Addr: cfg.Server.Address, Err: err}
	}

	if cfg.Server.TLS.Enabled() {
		cert, err := tls.X509KeyPair(cfg.Server.TLS.CertPEM, cfg.Server.TLS.KeyPEM)
		if err != nil {
			_ = ln.Close()
			return nil, &CreateError{Addr: cfg.Server.Address, Err: err}
		}
		ln = tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cert}})
	}

	return &Server{
		cfg:    cfg,
		id:     uuid.NewString(),
		shared: state.New(ln),
		log:    newLogDispatcher(cfg.RequestLog, b.sink),
	}, nil
}

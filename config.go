package goMetrics

// DefaultPath is the served path used when callers do not configure one.
const DefaultPath = "/metrics"

// ContentType is the Content-Type header sent with 200 responses.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// Config defines a public type used by goMetrics APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Server     ServerConfig
	RequestLog RequestLogConfig
}

/*
====================================
SERVER CONFIG
====================================
*/

// ServerConfig defines a public type used by goMetrics APIs.
//
// ServerConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ServerConfig struct {
	// Address is the host:port the listener binds at construction time.
	Address string
	// Path is the served path; normalized once, at Serve time.
	Path string
	// TLS enables encrypted transport when both fields are present.
	TLS TLSConfig
}

// TLSConfig defines a public type used by goMetrics APIs.
//
// TLSConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TLSConfig struct {
	CertPEM []byte
	KeyPEM  []byte
}

// Enabled reports whether both certificate and key material are present.
func (t TLSConfig) Enabled() bool {
	return len(t.CertPEM) > 0 && len(t.KeyPEM) > 0
}

func (t TLSConfig) partial() bool {
	return (len(t.CertPEM) > 0) != (len(t.KeyPEM) > 0)
}

/*
====================================
REQUEST LOG CONFIG
====================================
*/

// RequestLogConfig defines a public type used by goMetrics APIs.
//
// RequestLogConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RequestLogConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops diagnostic events under backpressure instead of
	// blocking the serving loop. Dropped counts are observable via
	// [Server.LogDropped].
	DropIfFull bool
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Path: DefaultPath,
		},
		RequestLog: RequestLogConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Server.Address == "" {
		return ErrEmptyAddress
	}
	if c.Server.TLS.partial() {
		return ErrTLSPartialMaterial
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Server.TLS.CertPEM = append([]byte(nil), cfg.Server.TLS.CertPEM...)
	out.Server.TLS.KeyPEM = append([]byte(nil), cfg.Server.TLS.KeyPEM...)
	return out
}

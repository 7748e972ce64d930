package route

import (
	"net/http"

	"github.com/MrEthical07/goMetrics/internal/urlpath"
)

// BufferSource yields the current metrics buffer. Implemented by state.Shared.
type BufferSource interface {
	Snapshot() []byte
}

// Outcome is the decision for a single inbound request.
type Outcome struct {
	Status int
	Body   []byte
}

// Decide applies the match rules in order: path first, then method, then the
// buffer. The order defines which status a malformed request receives — a
// POST to an unknown path is a 404, not a 405.
func Decide(method, requestPath, target string, src BufferSource) Outcome {
	if !urlpath.Match(target, requestPath) {
		return Outcome{Status: http.StatusNotFound}
	}
	if method != http.MethodGet {
		return Outcome{Status: http.StatusMethodNotAllowed}
	}
	return Outcome{Status: http.StatusOK, Body: src.Snapshot()}
}

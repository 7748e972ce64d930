package prometheus

import (
	"strconv"
	"strings"

	"github.com/MrEthical07/goMetrics/registry"
)

type metricsSource interface {
	Snapshot() registry.Snapshot
}

// Exporter renders registry metrics in Prometheus text exposition format.
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter that reads from the given [registry.Registry].
func NewExporter(reg *registry.Registry) *Exporter {
	return &Exporter{source: reg}
}

// NewExporterFromSource creates an exporter from a custom snapshot source.
func NewExporterFromSource(source metricsSource) *Exporter {
	return &Exporter{source: source}
}

// Render writes the current metrics in Prometheus text exposition format.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.Snapshot()
	if len(snapshot.Counters) == 0 && len(snapshot.Gauges) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(4096)

	for _, c := range snapshot.Counters {
		writeCounter(&b, c.Name, c.Help, c.Value)
	}
	for _, g := range snapshot.Gauges {
		writeGauge(&b, g.Name, g.Help, g.Value)
	}

	return b.String()
}

// Updater is the write half of the metrics server: the rendered payload is
// handed to it wholesale. Implemented by goMetrics.Server.
type Updater interface {
	Update(body []byte) int
}

// Push renders the current metrics and replaces the target's buffer with the
// result, returning the number of bytes written.
func (e *Exporter) Push(target Updater) int {
	if target == nil {
		return 0
	}
	return target.Update([]byte(e.Render()))
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	writeHeader(b, name, help, "counter")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func writeGauge(b *strings.Builder, name, help string, value float64) {
	writeHeader(b, name, help, "gauge")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
	b.WriteByte('\n')
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(kind)
	b.WriteByte('\n')
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}

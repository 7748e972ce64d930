package otel

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goMetrics/registry"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	Snapshot() registry.Snapshot
}

type observedCounter struct {
	name       string
	instrument metric.Int64ObservableCounter
}

type observedGauge struct {
	name       string
	instrument metric.Float64ObservableGauge
}

// OTelBridge registers registry metrics as OpenTelemetry observables.
//
// Instruments are created from the registry's contents at construction time;
// metrics registered afterwards are not exported.
type OTelBridge struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
	gauges       []observedGauge
}

func NewOTelBridge(meter metric.Meter, reg *registry.Registry) (*OTelBridge, error) {
	if reg == nil {
		return nil, ErrNilSource
	}
	return NewOTelBridgeFromSource(meter, reg)
}

func NewOTelBridgeFromSource(meter metric.Meter, source metricsSource) (*OTelBridge, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	snapshot := source.Snapshot()

	bridge := &OTelBridge{
		source:   source,
		counters: make([]observedCounter, 0, len(snapshot.Counters)),
		gauges:   make([]observedGauge, 0, len(snapshot.Gauges)),
	}

	observables := make([]metric.Observable, 0, len(snapshot.Counters)+len(snapshot.Gauges))

	for _, c := range snapshot.Counters {
		ins, err := meter.Int64ObservableCounter(c.Name, metric.WithDescription(c.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", c.Name, err)
		}
		bridge.counters = append(bridge.counters, observedCounter{name: c.Name, instrument: ins})
		observables = append(observables, ins)
	}

	for _, g := range snapshot.Gauges {
		ins, err := meter.Float64ObservableGauge(g.Name, metric.WithDescription(g.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable gauge %s: %w", g.Name, err)
		}
		bridge.gauges = append(bridge.gauges, observedGauge{name: g.Name, instrument: ins})
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snap := bridge.source.Snapshot()

		counterValues := make(map[string]uint64, len(snap.Counters))
		for _, c := range snap.Counters {
			counterValues[c.Name] = c.Value
		}
		gaugeValues := make(map[string]float64, len(snap.Gauges))
		for _, g := range snap.Gauges {
			gaugeValues[g.Name] = g.Value
		}

		for _, c := range bridge.counters {
			observer.ObserveInt64(c.instrument, int64(counterValues[c.name]))
		}
		for _, g := range bridge.gauges {
			observer.ObserveFloat64(g.instrument, gaugeValues[g.name])
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	bridge.registration = registration
	return bridge, nil
}

func (b *OTelBridge) Close() error {
	if b == nil || b.registration == nil {
		return nil
	}
	return b.registration.Unregister()
}

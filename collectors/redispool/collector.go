package redispool

import (
	"github.com/MrEthical07/goMetrics/registry"
	"github.com/redis/go-redis/v9"
)

// StatsSource exposes connection pool statistics. *redis.Client,
// *redis.ClusterClient, and redis.UniversalClient implement it.
type StatsSource interface {
	PoolStats() *redis.PoolStats
}

// Collector samples a Redis client's pool statistics into registry gauges.
// Call [Collector.Collect] on whatever cadence the application renders its
// metrics; each call overwrites the gauges with the current totals.
type Collector struct {
	source StatsSource

	hits       *registry.Gauge
	misses     *registry.Gauge
	timeouts   *registry.Gauge
	totalConns *registry.Gauge
	idleConns  *registry.Gauge
	staleConns *registry.Gauge
}

// NewCollector registers the redis pool gauges on reg and returns a collector
// reading from source. A nil source yields a collector whose Collect is a
// no-op.
func NewCollector(reg *registry.Registry, source StatsSource) *Collector {
	return &Collector{
		source:     source,
		hits:       reg.Gauge("redis_pool_hits", "Number of times a free connection was found in the pool."),
		misses:     reg.Gauge("redis_pool_misses", "Number of times a free connection was not found in the pool."),
		timeouts:   reg.Gauge("redis_pool_timeouts", "Number of times a wait for a connection timed out."),
		totalConns: reg.Gauge("redis_pool_total_conns", "Number of connections currently in the pool."),
		idleConns:  reg.Gauge("redis_pool_idle_conns", "Number of idle connections currently in the pool."),
		staleConns: reg.Gauge("redis_pool_stale_conns", "Number of stale connections removed from the pool."),
	}
}

// Collect reads the current pool statistics and overwrites the gauges.
func (c *Collector) Collect() {
	if c == nil || c.source == nil {
		return
	}
	stats := c.source.PoolStats()
	if stats == nil {
		return
	}

	c.hits.Set(float64(stats.Hits))
	c.misses.Set(float64(stats.Misses))
	c.timeouts.Set(float64(stats.Timeouts))
	c.totalConns.Set(float64(stats.TotalConns))
	c.idleConns.Set(float64(stats.IdleConns))
	c.staleConns.Set(float64(stats.StaleConns))
}

// Command gometrics-loadtest hammers a metrics server with concurrent GETs
// while a background goroutine keeps replacing the buffer, then reports
// latency percentiles. With no -addr it spins up an in-process server.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goMetrics "github.com/MrEthical07/goMetrics"
	"github.com/MrEthical07/goMetrics/export/prometheus"
	"github.com/MrEthical07/goMetrics/registry"
)

func main() {
	var (
		addr        = flag.String("addr", "", "target address; if empty, an in-process server is started")
		concurrency = flag.Int("concurrency", 32, "number of concurrent clients")
		requests    = flag.Int("requests", 50000, "total GET requests")
		payload     = flag.Int("payload", 4096, "approximate rendered payload size in bytes")
	)
	flag.Parse()

	if *concurrency <= 0 || *requests <= 0 || *payload <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency, requests, and payload must be > 0")
		os.Exit(2)
	}

	target := *addr
	var server *goMetrics.Server
	if target == "" {
		var err error
		server, err = goMetrics.New("127.0.0.1:0")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
			os.Exit(1)
		}
		server.Serve()
		target = server.Addr().String()
		fmt.Printf("using in-process server at %s\n", target)
	}

	reg := registry.New()
	counters := make([]*registry.Counter, 0, *payload/64)
	for i := 0; len(counters) < cap(counters); i++ {
		counters = append(counters, reg.Counter(fmt.Sprintf("loadtest_counter_%d", i), "Synthetic loadtest counter."))
	}
	exporter := prometheus.NewExporter(reg)

	stopUpdater := make(chan struct{})
	var updaterWG sync.WaitGroup
	if server != nil {
		updaterWG.Add(1)
		go func() {
			defer updaterWG.Done()
			for {
				select {
				case <-stopUpdater:
					return
				default:
				}
				for _, c := range counters {
					c.Inc()
				}
				exporter.Push(server)
			}
		}()
	}

	url := "http://" + target + "/metrics"
	perWorker := *requests / *concurrency

	var (
		wg        sync.WaitGroup
		failures  atomic.Int64
		latencyMu sync.Mutex
		latencies = make([]time.Duration, 0, *requests)
	)

	start := time.Now()
	wg.Add(*concurrency)
	for w := 0; w < *concurrency; w++ {
		go func() {
			defer wg.Done()
			local := make([]time.Duration, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				t0 := time.Now()
				res, err := http.Get(url)
				if err != nil {
					failures.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, res.Body)
				_ = res.Body.Close()
				if res.StatusCode != http.StatusOK {
					failures.Add(1)
					continue
				}
				local = append(local, time.Since(t0))
			}
			latencyMu.Lock()
			latencies = append(latencies, local...)
			latencyMu.Unlock()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	close(stopUpdater)
	updaterWG.Wait()
	if server != nil {
		if err := server.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "stop failed: %v\n", err)
		}
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pct := func(p float64) time.Duration {
		if len(latencies) == 0 {
			return 0
		}
		i := int(p * float64(len(latencies)-1))
		return latencies[i]
	}

	fmt.Printf("requests: %d  failures: %d  elapsed: %s  rps: %.0f\n",
		len(latencies), failures.Load(), elapsed.Round(time.Millisecond),
		float64(len(latencies))/elapsed.Seconds())
	fmt.Printf("latency p50: %s  p95: %s  p99: %s  max: %s\n",
		pct(0.50), pct(0.95), pct(0.99), pct(1.0))
}

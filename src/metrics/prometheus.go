// Package metrics contains support for reporting metrics about graph construction and queries.
// Because qsync runs as a transient process we can't wait around for Prometheus to scrape us,
// so metrics are either pushed to a pushgateway when we stop or written out to a text file.
package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/fs"
)

var log = logging.MustGetLogger("metrics")

const jobName = "qsync"

// registry holds everything we report. We don't use the default registry so we don't pick up
// the Go runtime collectors, which are fairly meaningless for a process that lives a few seconds.
var registry = prometheus.NewRegistry()

var closureComputations = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "qsync_closure_computations",
	Help: "Count of external transitive closures computed from scratch",
})

var closureCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "qsync_closure_cache_hits",
	Help: "Count of external transitive closures served from the memo table",
})

var pendingQueries = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "qsync_pending_queries",
	Help: "Count of pending external dependency lookups",
})

var graphBuildHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "qsync_graph_build_seconds",
	Help:    "Time taken to build the graph snapshot",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
})

func init() {
	registry.MustRegister(closureComputations, closureCacheHits, pendingQueries, graphBuildHistogram)
}

type pusher struct {
	url     string
	timeout time.Duration
	client  *retryablehttp.Client
	pushes  int
}

// p is the singleton pusher; it's nil unless a pushgateway is configured.
var p *pusher

// InitFromConfig sets up pushing metrics from the configuration.
func InitFromConfig(config *core.Configuration) {
	if config.Metrics.PushGatewayURL != "" {
		p = newPusher(config.Metrics.PushGatewayURL.String(), time.Duration(config.Metrics.PushTimeout))
	}
}

func newPusher(url string, timeout time.Duration) *pusher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = 250 * time.Millisecond
	client.Logger = nil
	return &pusher{url: url, timeout: timeout, client: client}
}

// ClosureComputed records that a closure was computed.
func ClosureComputed() {
	closureComputations.Inc()
}

// ClosureCacheHit records that a closure was already memoised.
func ClosureCacheHit() {
	closureCacheHits.Inc()
}

// PendingQuery records a lookup of pending external dependencies.
func PendingQuery() {
	pendingQueries.Inc()
}

// RecordGraphBuild records how long it took to build a graph snapshot.
func RecordGraphBuild(duration time.Duration) {
	graphBuildHistogram.Observe(duration.Seconds())
}

// Stop ensures the final metrics are sent before returning.
func Stop() {
	if p != nil {
		if err := p.push(); err != nil {
			log.Warning("Could not push metrics to %s: %s", p.url, err)
		}
	}
}

// WriteFile writes the current metrics to the given file in the Prometheus text format.
func WriteFile(filename string) error {
	if err := fs.EnsureDir(filename); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(filename, registry)
}

// deadline applies a deadline to an arbitrary function and returns when either the function
// completes or the deadline expires.
func deadline(f func() error, timeout time.Duration) error {
	c := make(chan error, 1)
	go func() {
		c <- f()
	}()
	select {
	case err := <-c:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("metrics push timed out")
	}
}

func (p *pusher) push() error {
	start := time.Now()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if err := deadline(func() error {
		return push.New(p.url, jobName).Client(p.client.StandardClient()).Gatherer(registry).Grouping("instance", hostname).Push()
	}, p.timeout); err != nil {
		return err
	}
	p.pushes++
	log.Debug("Push #%d of metrics in %0.3fs", p.pushes, time.Since(start).Seconds())
	return nil
}

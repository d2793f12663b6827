/*Package metrics wraps datadog-go to record client side metrics
Naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/x-xyz/auction/base/log"
)

const (
	// DefaultPort of the datadog agent
	DefaultPort = 8125

	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
	rate          = 1
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Config describes where metrics go and how they are tagged
type Config struct {
	// Host of the datadog agent, metrics are only logged when empty
	Host    string
	Port    int
	EnvName string
	AppName string
}

// Metrics prefixes every key with pkgName
type Metrics struct {
	pkgName string
	tags    []string
	cli     statsCli
}

// New creates a datadog backed Service, falling back to the log client when
// no agent host is configured or the agent can not be reached
func New(pkgName string, cfg Config) Service {
	tags := []string{
		"env:" + cfg.EnvName,
		"app:" + cfg.AppName,
	}
	if cfg.Host == "" {
		return &Metrics{pkgName: pkgName, tags: tags, cli: &LogClient{}}
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent")
		return &Metrics{pkgName: pkgName, tags: tags, cli: &LogClient{}}
	}
	return &Metrics{pkgName: pkgName, tags: tags, cli: cli}
}

// NewLog creates a Service which only writes debug logs
func NewLog(pkgName string) Service {
	return &Metrics{pkgName: pkgName, cli: &LogClient{}}
}

func (mt *Metrics) key(k string) string {
	return mt.pkgName + "." + k
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	if err := mt.cli.Count(mt.key(key), int64(val), append(mt.tags, parseTag(tags)...), rate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	if err := mt.cli.Histogram(mt.key(key), val, append(mt.tags, parseTag(tags)...), rate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

// BumpTime starts a timer which is recorded on End:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  append(mt.tags, parseTag(tags)...),
		cli:   mt.cli,
	}
}

// parseTag turns k1, v1, k2, v2 into k1:v1, k2:v2. A dangling key is dropped.
func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Warn("tag length needs to be multiple of 2")
		tags = tags[:len(tags)-1]
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + strings.ToLower(tags[i+1])
	}
	return arr
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
	cli   statsCli
}

func (dt *timeTracker) End() {
	d := time.Since(dt.start)
	msec := float64(d) / float64(time.Millisecond)
	if err := dt.cli.TimeInMilliseconds(dt.key, msec, dt.tags, rate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": dt.key, "val": msec, "func": "BumpTime"}).Error("Bump fail")
	}
}

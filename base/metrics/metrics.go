/*
Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
  - internal process time: *.time
  - external latency: *.latency
  - error: *.err
*/
package metrics

import (
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/platz/goapi/base/log"
)

// ddRate is the rate to pass metrics to the datadog agent. 1 means always.
const ddRate = 1

// Ender closes a timing started by BumpTime
type Ender interface {
	End()
}

// Service provides the metric recording interface
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

type impl struct {
	pkgName string
	client  *statsd.Client
}

// New creates a metric client with the package name as prefix. A nil statsd
// client (no agent configured) degrades to no-op recording.
func New(pkgName string) Service {
	addr := viper.GetString("datadog.agentAddr")
	if addr == "" {
		return &impl{pkgName: pkgName}
	}
	client, err := statsd.New(addr, statsd.WithTags([]string{
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}))
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "addr": addr}).Warn("statsd.New failed, metrics disabled")
		return &impl{pkgName: pkgName}
	}
	return &impl{pkgName: pkgName, client: client}
}

func (im *impl) key(key string) string {
	return im.pkgName + "." + key
}

func (im *impl) BumpAvg(key string, val float64, tags ...string) {
	if im.client == nil {
		return
	}
	im.client.Gauge(im.key(key), val, tags, ddRate)
}

func (im *impl) BumpSum(key string, val float64, tags ...string) {
	if im.client == nil {
		return
	}
	im.client.Count(im.key(key), int64(val), tags, ddRate)
}

func (im *impl) BumpHistogram(key string, val float64, tags ...string) {
	if im.client == nil {
		return
	}
	im.client.Histogram(im.key(key), val, tags, ddRate)
}

type timeEnder struct {
	im    *impl
	key   string
	tags  []string
	start time.Time
}

func (e *timeEnder) End() {
	if e.im.client == nil {
		return
	}
	e.im.client.Timing(e.im.key(e.key), time.Since(e.start), e.tags, ddRate)
}

func (im *impl) BumpTime(key string, tags ...string) Ender {
	return &timeEnder{im: im, key: key, tags: tags, start: time.Now()}
}

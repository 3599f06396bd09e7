/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/marketengine/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*Metrics)

// WithoutPodName drops the pod tag. Pod names multiply custom metrics, use it when grouping by pod is useless.
func WithoutPodName() Option {
	return func(mt *Metrics) {
		mt.withPodName = false
	}
}

// Metrics prefixes every key with its package name and forwards to the statsd sinks.
// Tags are read lazily so that packages may create their Service before the config is loaded.
type Metrics struct {
	pkgName     string
	withPodName bool
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	mt := &Metrics{
		pkgName:     pkgName,
		withPodName: true,
	}
	for _, option := range options {
		option(mt)
	}
	return mt
}

func (mt *Metrics) baseTags() []string {
	// an empty host tag drops the agent's host tags
	tags := []string{
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if mt.withPodName {
		tags = append(tags, "pod:"+viper.GetString("pod_name"))
	}
	return tags
}

// disabled reports whether bumps of the package are muted by `metrics.disabled`
func (mt *Metrics) disabled() bool {
	for _, name := range viper.GetStringSlice("metrics.disabled") {
		if name == mt.pkgName {
			return true
		}
	}
	return false
}

// sampleRate returns `metrics.sampleRate.<pkg>` or 1, which means always send
func (mt *Metrics) sampleRate() float64 {
	key := "metrics.sampleRate." + mt.pkgName
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return 1.0
}

// bump sends one value through send unless the package is muted. A malformed tag list is counted, not raised.
func (mt *Metrics) bump(kind, key string, tags []string, send func(s sink, name string, tags []string, rate float64) error) {
	if mt.disabled() {
		return
	}

	name := mt.pkgName + "." + key
	defer func() {
		if p := recover(); p != nil {
			_ = nextSink().Count(kind+".panic", 1, append(mt.baseTags(), "tag:"+name+"#"+strings.Join(tags, "#")), 1)
		}
	}()

	if err := send(nextSink(), name, append(mt.baseTags(), parseTag(tags)...), mt.sampleRate()); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name, "func": kind}).Error("Bump fail")
	}
}

// BumpAvg sends a gauge, datadog has no plain average
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.bump("bumpavg", key, tags, func(s sink, name string, tags []string, rate float64) error {
		return s.Gauge(name, val, tags, rate)
	})
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.bump("bumpsum", key, tags, func(s sink, name string, tags []string, rate float64) error {
		return s.Count(name, int64(val), tags, rate)
	})
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.bump("bumphistogram", key, tags, func(s sink, name string, tags []string, rate float64) error {
		return s.Histogram(name, val, tags, rate)
	})
}

// BumpTime starts a timer and records it in milliseconds on End:
//
//	defer met.BumpTime("commit.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timer{mt: mt, key: key, tags: tags, start: time.Now()}
}

type timer struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.bump("bumptime", t.key, t.tags, func(s sink, name string, tags []string, rate float64) error {
		return s.TimeInMilliseconds(name, ms, tags, rate)
	})
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

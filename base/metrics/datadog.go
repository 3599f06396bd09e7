package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketengine/base/log"
)

const (
	sinkPoolSize = 16 // needs to be 2^n
	sinkIdxMask  = sinkPoolSize - 1

	defaultDdPort = 8125
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}
	sinkIdx  = int32(0)
	sinks    []sink
)

// sink is the part of the statsd client the package uses
type sink interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// nextSink hands out the pooled clients round robin
func nextSink() sink {
	initOnce.Do(initSinks)
	return sinks[atomic.AddInt32(&sinkIdx, 1)&sinkIdxMask]
}

func initSinks() {
	sinks = make([]sink, sinkPoolSize)

	host := viper.GetString("datadog_host")
	if host == "" {
		log.Log().Info("datadog_host not set, metrics are logged only")
		for i := range sinks {
			sinks[i] = logSink{}
		}
		return
	}

	port := viper.GetInt("datadog_port")
	if port <= 0 {
		port = defaultDdPort
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	for i := range sinks {
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		sinks[i] = cli
	}
}

// logSink writes metrics to the debug log when no agent is configured
type logSink struct{}

func (logSink) emit(kind, name string, value interface{}, tags []string) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric " + kind)
	return nil
}

func (l logSink) Gauge(name string, value float64, tags []string, rate float64) error {
	return l.emit("gauge", name, value, tags)
}

func (l logSink) Count(name string, value int64, tags []string, rate float64) error {
	return l.emit("count", name, value, tags)
}

func (l logSink) Histogram(name string, value float64, tags []string, rate float64) error {
	return l.emit("histogram", name, value, tags)
}

func (l logSink) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return l.emit("time", name, value, tags)
}

package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// EstimateTotal counts checkout estimate outcomes.
	EstimateTotal *prometheus.CounterVec
	// EstimateDuration records end-to-end estimate latency in milliseconds.
	EstimateDuration prometheus.Histogram
	// ZoneResolutionTotal counts resolved shipping zones by zone code.
	ZoneResolutionTotal *prometheus.CounterVec
	// RatesFallbackTotal counts how often stored rates were replaced by the
	// built-in defaults, by snapshot part.
	RatesFallbackTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		EstimateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimate_total",
			Help:      "Count of checkout estimate outcomes.",
		}, []string{"result"})
		EstimateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_duration_ms",
			Help:      "Latency of checkout estimates in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		})
		ZoneResolutionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zone_resolution_total",
			Help:      "Count of shipping zone resolutions by zone code.",
		}, []string{"zone"})
		RatesFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_fallback_total",
			Help:      "Count of rates snapshot parts served from built-in defaults.",
		}, []string{"part"})

		mustRegisterCollector(reg, EstimateTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EstimateTotal = v
			}
		})
		mustRegisterCollector(reg, EstimateDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				EstimateDuration = v
			}
		})
		mustRegisterCollector(reg, ZoneResolutionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ZoneResolutionTotal = v
			}
		})
		mustRegisterCollector(reg, RatesFallbackTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RatesFallbackTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}

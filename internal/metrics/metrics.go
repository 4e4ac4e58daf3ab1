// Package metrics coleta e expõe métricas Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector é a interface de coleta usada pelos handlers.
type MetricsCollector interface {
	RecordGenerate(model, format string)
	RecordGenerateFailure(model, format string)
	RecordConversionTier(tier string)
	RecordHTTPStatus(statusCode int)
	RecordGenerateLatency(duration time.Duration)
}

// Collector é a implementação sobre Prometheus.
type Collector struct {
	generateTotal   *prometheus.CounterVec
	generateFail    *prometheus.CounterVec
	conversionTier  *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	generateLatency prometheus.Histogram
}

// NewCollector cria o Collector e registra as métricas no registry indicado.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generateTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plaquinhas_generate_total",
			Help: "Total de documentos gerados por modelo e formato",
		}, []string{"model", "format"}),
		generateFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plaquinhas_generate_fail_total",
			Help: "Total de falhas de geração por modelo e formato",
		}, []string{"model", "format"}),
		conversionTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plaquinhas_conversion_tier_total",
			Help: "Total de conversões PDF por estratégia utilizada",
		}, []string{"tier"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plaquinhas_http_status_total",
			Help: "Total de respostas por código de status HTTP",
		}, []string{"status_code"}),
		generateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plaquinhas_generate_latency_seconds",
			Help:    "Latência da geração de documentos (segundos)",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.generateTotal,
		c.generateFail,
		c.conversionTier,
		c.httpStatus,
		c.generateLatency,
	)

	return c
}

// RecordGenerate registra uma geração bem sucedida.
func (c *Collector) RecordGenerate(model, format string) {
	c.generateTotal.WithLabelValues(model, format).Inc()
}

// RecordGenerateFailure registra uma falha de geração.
func (c *Collector) RecordGenerateFailure(model, format string) {
	c.generateFail.WithLabelValues(model, format).Inc()
}

// RecordConversionTier registra a estratégia de conversão que atendeu.
func (c *Collector) RecordConversionTier(tier string) {
	c.conversionTier.WithLabelValues(tier).Inc()
}

// RecordHTTPStatus registra o status de uma resposta.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordGenerateLatency registra a latência de uma geração.
func (c *Collector) RecordGenerateLatency(duration time.Duration) {
	c.generateLatency.Observe(duration.Seconds())
}

// Handler devolve o handler HTTP de scrape do Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

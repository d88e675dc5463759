package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultLabel = "result"
	Outcome     = "outcome"
	Succeeded   = "succeeded"
	Failed      = "failed"
)

type MetricsProvider interface {
	HandleMetrics() error
}

// DependencyLister is implemented by dependency models.
type DependencyLister interface {
	Dependencies() []string
}

type metricsModel struct {
	lister DependencyLister
}

func NewMetricsModel(lister DependencyLister) MetricsProvider {
	return &metricsModel{lister}
}

func (m *metricsModel) HandleMetrics() error {
	dependencyCount.Set(float64(len(m.lister.Dependencies())))
	return nil
}

type MetricsNil struct{}

func NewMetricsNil() MetricsProvider {
	return &MetricsNil{}
}

func (*MetricsNil) HandleMetrics() error {
	return nil
}

// To add new metrics:
// 1. Register new metrics in RegisterVariantLogic() below.
// 2. Add appropriate metric updates in HandleMetrics (or elsewhere instead).
var (
	dependencyCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "variant_dependency_count",
			Help: "Number of variant dependencies held by the dependency model",
		},
	)

	parseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_logic_parse_total",
			Help: "Monotonic count of dependency logic formulas parsed",
		},
		[]string{Outcome},
	)

	buildTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_logic_build_total",
			Help: "Monotonic count of dependency logic graphs built",
		},
		[]string{Outcome},
	)

	evaluationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_logic_evaluation_total",
			Help: "Monotonic count of dependency evaluations by result",
		},
		[]string{ResultLabel},
	)
)

func RegisterVariantLogic() {
	prometheus.MustRegister(dependencyCount)
	prometheus.MustRegister(parseTotal)
	prometheus.MustRegister(buildTotal)
	prometheus.MustRegister(evaluationTotal)
}

func outcome(err error) string {
	if err != nil {
		return Failed
	}
	return Succeeded
}

func EmitParse(err error) {
	parseTotal.WithLabelValues(outcome(err)).Inc()
}

func EmitBuild(err error) {
	buildTotal.WithLabelValues(outcome(err)).Inc()
}

func EmitEvaluation(result bool) {
	label := "false"
	if result {
		label = "true"
	}
	evaluationTotal.WithLabelValues(label).Inc()
}

// ParseCount returns the parse counter for outcome.
func ParseCount(outcome string) prometheus.Counter {
	return parseTotal.WithLabelValues(outcome)
}

// BuildCount returns the build counter for outcome.
func BuildCount(outcome string) prometheus.Counter {
	return buildTotal.WithLabelValues(outcome)
}

// EvaluationCount returns the evaluation counter for result.
func EvaluationCount(result bool) prometheus.Counter {
	if result {
		return evaluationTotal.WithLabelValues("true")
	}
	return evaluationTotal.WithLabelValues("false")
}

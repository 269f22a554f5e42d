package metrics

import (
	"strings"
	"time"

	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const OutcomeSuccess = "success"

var (
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_store_operations_total",
			Help: "Total number of catalog store operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_store_operation_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ImportedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_import_rows_total",
			Help: "Total number of spreadsheet rows processed by the film importer",
		},
		[]string{"result"}, // "imported", "skipped"
	)
)

// Outcome maps an error to a metric label: "success", or the lower-cased error code.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternalError
	}
	return strings.ToLower(code)
}

func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperations.WithLabelValues(operation, Outcome(err)).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordImportedRow(imported bool) {
	if imported {
		ImportedRows.WithLabelValues("imported").Inc()
		return
	}
	ImportedRows.WithLabelValues("skipped").Inc()
}

// Counters returns the current value of every store operation counter keyed by "operation/outcome".
func Counters() (map[string]float64, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	counters := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != "filmorate_store_operations_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			counters[labelKey(m)] = m.GetCounter().GetValue()
		}
	}
	return counters, nil
}

func labelKey(m *dto.Metric) string {
	var operation, outcome string
	for _, label := range m.GetLabel() {
		switch label.GetName() {
		case "operation":
			operation = label.GetValue()
		case "outcome":
			outcome = label.GetValue()
		}
	}
	return operation + "/" + outcome
}

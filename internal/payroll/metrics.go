package payroll

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeGenerated    = "generated"
	outcomeExists       = "skipped_exists"
	outcomeNoSalary     = "skipped_no_salary"
	outcomeNoLedger     = "skipped_no_ledger"
	outcomeFailed       = "failed"
	outcomeRaceConflict = "skipped_concurrent"
)

var metricsRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ems_payroll_records_total",
	Help: "Number of employees processed by payroll generation, by outcome",
}, []string{"outcome"})

var metricsRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ems_payroll_run_duration_seconds",
	Help:    "Duration of a complete payroll generation run",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
})

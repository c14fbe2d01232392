package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DocumentLoads = promauto.NewCounter(prometheus.CounterOpts{
	Name: "restodesk_document_loads_total",
	Help: "The number of document loads",
})

var DocumentSaves = promauto.NewCounter(prometheus.CounterOpts{
	Name: "restodesk_document_saves_total",
	Help: "The number of document saves",
})

var DDLStatements = promauto.NewCounter(prometheus.CounterOpts{
	Name: "restodesk_ddl_statements_total",
	Help: "The number of lazily issued DDL statements",
})

var WorkflowTransitions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "restodesk_workflow_transitions_total",
	Help: "The number of workflow transitions applied",
})

var SaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "restodesk_save_duration_seconds",
	Help:    "The duration of aggregate saves including child reconciliation",
	Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
})

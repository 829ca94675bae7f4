// Copyright © 2026 The Quill authors

package lsp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_lsp_validations_total",
		Help: "Total number of document validations.",
	})

	validationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_lsp_validation_seconds",
		Help:    "Time spent building the symbol table and linting a document.",
		Buckets: prometheus.DefBuckets,
	})

	diagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_lsp_diagnostics_total",
		Help: "Total number of diagnostics published, by severity.",
	}, []string{"severity"})

	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_lsp_cache_invalidations_total",
		Help: "Total number of symbol tables dropped from the cache.",
	})

	openDocuments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quill_lsp_open_documents",
		Help: "Current number of documents open in the editor.",
	})
)

package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_records_written_total",
		Help: "Total number of create, update and delete operations by resource",
	}, []string{"resource", "op"})

	LineItemBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_line_item_batches_total",
		Help: "Total number of line-item batches by kind and outcome",
	}, []string{"kind", "outcome"})

	LineItemsCommittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_line_items_committed_total",
		Help: "Total number of line items committed",
	}, []string{"kind"})

	LineItemBatchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "halcon_line_item_batch_latency_seconds",
		Help:    "Latency of transactional line-item batch inserts",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	IdempotentReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halcon_idempotent_replays_total",
		Help: "Total number of batch submissions answered from the idempotency cache",
	})

	PawnStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_pawn_status_changes_total",
		Help: "Total number of pawn status changes",
	}, []string{"from", "to"})

	PawnsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "halcon_pawns",
		Help: "Number of pawns per status",
	}, []string{"status"})

	PawnsOverdue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "halcon_pawns_overdue",
		Help: "Number of active pawns past their expiration date",
	})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_events_published_total",
		Help: "Total number of domain events published by type and outcome",
	}, []string{"event_type", "outcome"})

	AuditEventsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcon_audit_events_recorded_total",
		Help: "Total number of events handled by the audit worker",
	}, []string{"event_type", "outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

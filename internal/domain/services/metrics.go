package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

var bulkEditOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bulk_edit_outcomes_total",
		Help: "Количество товаров по результату массовой правки",
	},
	[]string{"action", "outcome"},
)

func observeReport(report *models.BatchReport) {
	action := string(report.Action)
	bulkEditOutcomes.WithLabelValues(action, "updated").Add(float64(report.Stats.Updated))
	bulkEditOutcomes.WithLabelValues(action, "skipped").Add(float64(report.Stats.Skipped))
	bulkEditOutcomes.WithLabelValues(action, "failed").Add(float64(report.Stats.Failed))
}

package models

import (
	"time"
)

// Action тип массовой операции
type Action string

const (
	ActionTitle       Action = "title"
	ActionStatus      Action = "status"
	ActionProductType Action = "product_type"
	ActionTags        Action = "tags"
	ActionSKU         Action = "sku"
	ActionWeight      Action = "weight"
)

// VariantOutcome результат правки одного варианта
type VariantOutcome struct {
	VariantID string       `json:"variantId"`
	Original  string       `json:"original"`
	New       string       `json:"new"`
	Skipped   bool         `json:"skipped"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// ProductOutcome результат правки одного товара
type ProductOutcome struct {
	ProductID string           `json:"productId"`
	Title     string           `json:"title,omitempty"`
	Original  any              `json:"original,omitempty"`
	New       any              `json:"new,omitempty"`
	Skipped   bool             `json:"skipped"`
	Errors    []FieldError     `json:"errors,omitempty"`
	Variants  []VariantOutcome `json:"variants,omitempty"`
}

// Failed true, если у товара или у любого из его вариантов есть ошибки
func (o ProductOutcome) Failed() bool {
	if len(o.Errors) > 0 {
		return true
	}
	for _, v := range o.Variants {
		if len(v.Errors) > 0 {
			return true
		}
	}
	return false
}

// Stats агрегированные счетчики по пакету
type Stats struct {
	Total           int `json:"total"`
	Updated         int `json:"updated"`
	Skipped         int `json:"skipped"`
	Failed          int `json:"failed"`
	VariantsUpdated int `json:"variantsUpdated,omitempty"`
	VariantsSkipped int `json:"variantsSkipped,omitempty"`
	VariantsFailed  int `json:"variantsFailed,omitempty"`
}

// Verdict итог пакета
type Verdict string

const (
	VerdictOK      Verdict = "ok"
	VerdictPartial Verdict = "partial"
	VerdictFailed  Verdict = "failed"
)

// BatchReport результат массовой операции
type BatchReport struct {
	Action     Action           `json:"action"`
	Stats      Stats            `json:"stats"`
	Results    []ProductOutcome `json:"results"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
}

// NewBatchReport считает статистику по результатам
func NewBatchReport(action Action, results []ProductOutcome, startedAt time.Time) *BatchReport {
	report := &BatchReport{
		Action:     action,
		Results:    results,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}

	stats := Stats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Failed():
			stats.Failed++
		case r.Skipped:
			stats.Skipped++
		default:
			stats.Updated++
		}

		for _, v := range r.Variants {
			switch {
			case len(v.Errors) > 0:
				stats.VariantsFailed++
			case v.Skipped:
				stats.VariantsSkipped++
			default:
				stats.VariantsUpdated++
			}
		}
	}
	report.Stats = stats

	return report
}

// Verdict ok, если ошибок нет; failed, если упали все товары
func (r *BatchReport) Verdict() Verdict {
	switch {
	case r.Stats.Failed == 0:
		return VerdictOK
	case r.Stats.Failed == r.Stats.Total:
		return VerdictFailed
	default:
		return VerdictPartial
	}
}

// FailedResults только товары с ошибками
func (r *BatchReport) FailedResults() []ProductOutcome {
	var failed []ProductOutcome
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// ---------------------------- JOURNAL MODELS ----------------------------

// BatchRecord запись журнала массовых правок
type BatchRecord struct {
	ID         string           `json:"id"`
	Shop       string           `json:"shop"`
	Action     Action           `json:"action"`
	Edit       any              `json:"edit"`
	Verdict    Verdict          `json:"verdict"`
	Stats      Stats            `json:"stats"`
	Results    []ProductOutcome `json:"results,omitempty"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
}

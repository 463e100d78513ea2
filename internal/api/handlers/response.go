package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// errorResponse вариант Err
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// okResponse вариант Ok
type okResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Stats   models.Stats            `json:"stats"`
	Results []models.ProductOutcome `json:"results"`
}

// partialResponse вариант PartialFailure
type partialResponse struct {
	Success bool                    `json:"success"`
	Partial bool                    `json:"partial"`
	Message string                  `json:"message"`
	Stats   models.Stats            `json:"stats"`
	Results []models.ProductOutcome `json:"results"`
	Errors  []models.ProductOutcome `json:"errors"`
}

// failedResponse ни один товар пакета не обновлен
type failedResponse struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error"`
	Details string                  `json:"details,omitempty"`
	Stats   models.Stats            `json:"stats"`
	Errors  []models.ProductOutcome `json:"errors"`
}

// response представляет структуру успешного ответа
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func summary(s models.Stats) string {
	return fmt.Sprintf("Обновлено: %d, пропущено: %d, ошибок: %d", s.Updated, s.Skipped, s.Failed)
}

// renderReport выбирает вариант ответа по итогу пакета
func renderReport(w http.ResponseWriter, r *http.Request, report *models.BatchReport) {
	switch report.Verdict() {
	case models.VerdictOK:
		render.Status(r, http.StatusOK)
		render.JSON(w, r, okResponse{
			Success: true,
			Message: summary(report.Stats),
			Stats:   report.Stats,
			Results: report.Results,
		})

	case models.VerdictPartial:
		render.Status(r, http.StatusOK)
		render.JSON(w, r, partialResponse{
			Success: true,
			Partial: true,
			Message: summary(report.Stats),
			Stats:   report.Stats,
			Results: report.Results,
			Errors:  report.FailedResults(),
		})

	default:
		failed := report.FailedResults()
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, failedResponse{
			Error:   "Не удалось обновить ни одного товара",
			Details: firstMessage(failed),
			Stats:   report.Stats,
			Errors:  failed,
		})
	}
}

func firstMessage(outcomes []models.ProductOutcome) string {
	for _, o := range outcomes {
		if len(o.Errors) > 0 {
			return o.Errors[0].Message
		}
		for _, v := range o.Variants {
			if len(v.Errors) > 0 {
				return v.Errors[0].Message
			}
		}
	}
	return ""
}

// renderError переводит ошибку в HTTP-статус. Детали внутренних ошибок клиенту не отдаются.
func renderError(w http.ResponseWriter, r *http.Request, logger interfaces.LoggerPort, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: "Внутренняя ошибка сервера"}

	switch {
	case errors.Is(err, models.ErrMissingField), errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
		resp = errorResponse{Error: "Некорректный запрос", Details: err.Error()}
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrSessionNotFound):
		status = http.StatusUnauthorized
		resp = errorResponse{Error: "Требуется авторизация"}
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		resp = errorResponse{Error: "Не найдено", Details: err.Error()}
	case errors.Is(err, models.ErrUpstream):
		status = http.StatusBadGateway
		resp = errorResponse{Error: "Ошибка API платформы", Details: err.Error()}
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(r.Context(), "Ошибка обработки запроса",
			interfaces.LogField{Key: "path", Value: r.URL.Path},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

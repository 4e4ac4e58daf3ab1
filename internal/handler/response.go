// Package handler expõe os handlers HTTP da API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// errorResponse é o corpo JSON de erro da API.
type errorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeJSON serializa o corpo como JSON com o status indicado.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse escreve um APIError com o status indicado.
func writeAPIErrorResponse(w http.ResponseWriter, status int, apiErr *model.APIError) {
	writeJSON(w, status, errorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError converte um erro da camada de serviço no status HTTP
// adequado. Erros fora da taxonomia viram 500 genérico.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("erro interno", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Ocorreu um erro interno.",
		Category: "system",
		Action:   "Aguarde alguns instantes e tente novamente.",
	})
}

// mapAPIErrorToHTTPStatus mapeia o código do APIError para o status HTTP.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidInput, model.ErrCodeInvalidValue:
		return http.StatusBadRequest
	case model.ErrCodeEmailConflict:
		return http.StatusConflict
	case model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeWrongPassword, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeTemplateNotFound, model.ErrCodeRenderError,
		model.ErrCodeConversionService, model.ErrCodePdfUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

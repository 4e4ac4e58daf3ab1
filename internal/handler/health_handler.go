package handler

import (
	"context"
	"net/http"
	"time"
)

// LocalConverterProbe sonda a presença do conversor local.
type LocalConverterProbe interface {
	Available() bool
}

// ExternalConverterProbe sonda a saúde do serviço externo de conversão.
type ExternalConverterProbe interface {
	Healthy(ctx context.Context) bool
}

// HealthHandler atende a sonda de saúde da API.
type HealthHandler struct {
	local    LocalConverterProbe
	external ExternalConverterProbe
}

// NewHealthHandler cria o HealthHandler. As sondas podem ser nil.
func NewHealthHandler(local LocalConverterProbe, external ExternalConverterProbe) *HealthHandler {
	return &HealthHandler{local: local, external: external}
}

// Health devolve o estado do serviço e dos conversores.
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	localOK := h.local != nil && h.local.Available()
	externalOK := h.external != nil && h.external.Healthy(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                       true,
		"ts":                       time.Now().UnixMilli(),
		"localConverterAvailable":  localOK,
		"externalServiceAvailable": externalOK,
	})
}

package list_fields

import (
	"context"
	"net/http"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/fields"
)

type FieldsService interface {
	List(ctx context.Context, filter domain.FieldsFilter) (*fields.FieldListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service FieldsService
	logger  Logger
}

func NewHandler(service FieldsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields?sport=футбол&city=Москва
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var filter domain.FieldsFilter
	if sport := r.URL.Query().Get("sport"); sport != "" {
		filter.Sport = &sport
	}
	if city := r.URL.Query().Get("city"); city != "" {
		filter.City = &city
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /fields - Failed to list fields: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

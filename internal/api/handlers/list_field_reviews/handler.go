package list_field_reviews

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/service/reviews"
)

const (
	msgInvalidFieldID = "некорректный идентификатор площадки"
	msgFieldNotFound  = "площадка не найдена"
)

type ReviewsService interface {
	ListByField(ctx context.Context, req *reviews.ListReviewsRequest) (*reviews.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReviewsService
	logger  Logger
}

func NewHandler(service ReviewsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{id}/reviews?limit=10&offset=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || fieldID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	req := &reviews.ListReviewsRequest{FieldID: fieldID}
	if limit, err := strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64); err == nil {
		req.Limit = limit
	}
	if offset, err := strconv.ParseUint(r.URL.Query().Get("offset"), 10, 64); err == nil {
		req.Offset = offset
	}

	result, err := h.service.ListByField(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFieldID)

		default:
			h.logger.Error("GET /fields/{id}/reviews - Failed to list reviews: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

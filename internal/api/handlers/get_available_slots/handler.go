package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	getAvailableSlots "github.com/ZHANGLudovic/Web-Project/internal/usecase/get_available_slots"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

const (
	msgInvalidFieldID = "некорректный идентификатор площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFieldNotFound  = "площадка не найдена"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SlotsResponse HTTP ответ со слотами площадки на дату
type SlotsResponse struct {
	FieldID        int64    `json:"fieldId"`
	Date           string   `json:"date"`
	AllSlots       []string `json:"allSlots"`
	ReservedSlots  []string `json:"reservedSlots"`
	AvailableSlots []string `json:"availableSlots"`
}

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{id}/available-slots?date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || fieldID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		FieldID: fieldID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFieldID)

		default:
			h.logger.Error("GET /fields/{id}/available-slots - Failed: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotsResponse{
		FieldID:        result.FieldID,
		Date:           result.Date.Format(domain.DateFormat),
		AllSlots:       labelsToStrings(result.AllSlots),
		ReservedSlots:  labelsToStrings(result.ReservedSlots),
		AvailableSlots: labelsToStrings(result.AvailableSlots),
	})
}

func labelsToStrings(labels []types.TimeString) []string {
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		result = append(result, label.String())
	}
	return result
}

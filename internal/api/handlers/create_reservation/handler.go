package create_reservation

import (
	"errors"
	"net/http"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	createReservation "github.com/ZHANGLudovic/Web-Project/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgFieldNotFound      = "площадка не найдена"
	msgFieldClosed        = "площадка закрыта в выбранное время"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgInvalidDate        = "некорректная дата бронирования"
	msgSlotConflict       = "часть выбранных слотов уже занята"
	msgRetryConflict      = "запрос проиграл гонку конкурентному бронированию, повторите попытку"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createReservation.SlotConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, field_id=%d, slots=%v",
				user.ID, req.FieldID, conflictErr.Labels)
			handlers.RespondJSON(w, http.StatusConflict, &ConflictResponse{
				Message:          msgSlotConflict,
				ConflictingSlots: labelsToStrings(conflictErr.Labels),
			})

		case errors.Is(err, createReservation.ErrConflictRetryable):
			h.logger.Warn("POST /reservations - Retryable conflict: user_id=%d, field_id=%d", user.ID, req.FieldID)
			handlers.RespondConflict(w, msgRetryConflict)

		case errors.Is(err, createReservation.ErrFieldNotFound):
			h.logger.Warn("POST /reservations - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createReservation.ErrFieldClosed):
			h.logger.Warn("POST /reservations - Field closed: user_id=%d, field_id=%d", user.ID, req.FieldID)
			handlers.RespondBadRequest(w, msgFieldClosed)

		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, field_id=%d", user.ID, req.FieldID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: user_id=%d, field_id=%d", user.ID, req.FieldID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, field_id=%d", user.ID, req.FieldID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, field_id=%d, error=%v",
				user.ID, req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, field_id=%d",
		result.ID, user.ID, req.FieldID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

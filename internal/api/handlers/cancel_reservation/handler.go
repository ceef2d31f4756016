package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	cancelReservation "github.com/ZHANGLudovic/Web-Project/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "некорректный идентификатор бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgAccessDenied         = "нет прав на отмену этого бронирования"
	msgRetryConflict        = "отмена проиграла гонку конкурентной операции, повторите попытку"
)

// CancelResponse HTTP ответ об отмене
type CancelResponse struct {
	ReservationID int64 `json:"reservationId"`
	FreedSlots    int64 `json:"freedSlots"`
}

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /reservations/{id} - Invalid id: %v", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		ReservationID: id,
		UserID:        user.ID,
		IsAdmin:       user.IsAdmin(),
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrForbidden):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: reservation_id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelReservation.ErrConflictRetryable):
			h.logger.Warn("DELETE /reservations/{id} - Retryable conflict: reservation_id=%d", id)
			handlers.RespondConflict(w, msgRetryConflict)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: reservation_id=%d, freed_slots=%d",
		id, result.FreedSlots)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		ReservationID: result.ReservationID,
		FreedSlots:    result.FreedSlots,
	})
}

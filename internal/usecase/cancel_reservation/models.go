package cancel_reservation

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64 // ID отменяемого бронирования
	UserID        int64 // ID пользователя, выполняющего отмену
	IsAdmin       bool  // Администратор может отменить любое бронирование
}

// Response модель ответа об отмене
type Response struct {
	ReservationID int64 // ID отменённого бронирования
	FreedSlots    int64 // Сколько слотов освобождено
}

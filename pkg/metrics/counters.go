package metrics

// Удобные методы-инкременты доменных счётчиков: use case'ы зависят от
// узкого интерфейса, а не от prometheus напрямую

// IncReservationCreated увеличивает счётчик успешно созданных бронирований
func (m *Metrics) IncReservationCreated() {
	m.ReservationsCreatedTotal.Inc()
}

// IncReservationCancelled увеличивает счётчик отменённых бронирований
func (m *Metrics) IncReservationCancelled() {
	m.ReservationsCancelledTotal.Inc()
}

// IncSlotConflict увеличивает счётчик отказов из-за занятых слотов
func (m *Metrics) IncSlotConflict() {
	m.SlotConflictsTotal.Inc()
}

// IncSerializationFailure увеличивает счётчик проигранных гонок транзакций
func (m *Metrics) IncSerializationFailure() {
	m.SerializationFailuresTotal.Inc()
}

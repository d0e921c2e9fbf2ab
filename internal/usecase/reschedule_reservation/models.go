package reschedule_reservation

import (
	"time"

	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Опущенные поля сохраняют текущие значения бронирования. Для сотрудника
// нужен отдельный флаг: StaffID == nil при StaffProvided == true означает
// "снять привязку к сотруднику", а StaffProvided == false — "не менять".
type Request struct {
	TenantSlug    string            // Слаг тенанта
	ReservationID int64             // ID переносимого бронирования
	Date          *time.Time        // Новая дата (опционально)
	StartTime     *types.TimeString // Новое время начала (опционально)
	StaffID       *int64            // Новый сотрудник
	StaffProvided bool              // Поле staffId присутствовало в запросе
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64            // ID бронирования
	TenantSlug      string           // Слаг тенанта
	ServiceID       int64            // ID услуги
	StaffID         *int64           // ID сотрудника после переноса
	ReservationDate time.Time        // Дата после переноса
	StartTime       types.TimeString // Время начала после переноса
	EndTime         types.TimeString // Время окончания после переноса
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	ServiceName       string  // Название услуги
	ServicePriceMinor int64   // Цена услуги в минорных единицах
	CustomerName      *string // Имя клиента
	Notes             *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

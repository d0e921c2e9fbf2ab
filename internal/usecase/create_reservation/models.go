package create_reservation

import (
	"time"

	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantSlug   string           // Слаг тенанта
	ServiceID    int64            // ID услуги
	StaffID      *int64           // ID сотрудника (опционально)
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	CustomerName *string          // Имя клиента (опционально)
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	TenantSlug      string           // Слаг тенанта
	ServiceID       int64            // ID услуги
	StaffID         *int64           // ID сотрудника
	ReservationDate time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные услуги
	ServiceName       string  // Название услуги
	ServicePriceMinor int64   // Цена услуги в минорных единицах
	CustomerName      *string // Имя клиента
	Notes             *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

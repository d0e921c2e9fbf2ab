package get_availability

import (
	"time"

	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Request модель запроса на расчёт доступности
type Request struct {
	TenantSlug  string     // Слаг тенанта
	ServiceID   int64      // ID услуги, для которой считается доступность
	StaffID     *int64     // Фильтр по сотруднику (опционально)
	FromDate    time.Time  // Первая дата диапазона (без времени)
	ToDate      time.Time  // Последняя дата диапазона (включительно)
	Granularity int        // Шаг сетки в минутах (0 = дефолтный)
}

// Response модель ответа с сеткой доступности.
// Все дни диапазона используют единую последовательность строк: от самого
// раннего открытия до самого позднего закрытия среди дней диапазона.
type Response struct {
	TenantSlug  string           // Слаг тенанта
	ServiceID   int64            // ID услуги
	StaffID     *int64           // Фильтр по сотруднику, если был задан
	Granularity int              // Шаг сетки в минутах
	Rows        []types.TimeString // Времена начала строк, общие для всех дней
	Days        []DayAvailability  // Дни диапазона по порядку
}

// DayAvailability доступность одного дня диапазона
type DayAvailability struct {
	Date     time.Time // Дата
	Closed   bool      // Тенант закрыт в этот день
	OpensAt  types.TimeString
	ClosesAt types.TimeString
	Slots    []Slot // По одному элементу на каждую строку сетки
}

// Slot одна ячейка сетки: бронирование услуги, начинающееся в StartTime.
// Available означает, что создание бронирования с этим началом прошло бы
// все проверки: рабочие часы, окно сотрудника и занятость на всю
// длительность услуги, а не только на эту ячейку.
type Slot struct {
	StartTime types.TimeString // Начало ячейки
	EndTime   types.TimeString // Конец ячейки (начало + шаг сетки)
	Available bool
}

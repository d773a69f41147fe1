package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID           uuid.UUID   // ID тенанта (бизнеса)
	CustomerID         uuid.UUID   // ID клиента
	OrderNumber        string      // Номер заказа (опционально, уникален глобально)
	StartTime          time.Time   // Начало слота
	Description        string      // Заметки (опционально)
	ServiceOfferingIDs []uuid.UUID // Выбранные услуги
	NotifyByEmail      bool        // Отправить клиенту письмо с ICS-вложением
}

// Response модель ответа с созданной записью
type Response struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	OrderNumber  string
	StartTime    time.Time
	Description  string
	Status       string

	// Снапшот выбранных услуг с ценами на момент бронирования
	Services []domain.ServiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

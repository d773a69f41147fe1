package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if len(req.OrderNumber) > domain.MaxOrderNumberLength {
		return fmt.Errorf("%w: orderNumber exceeds %d characters", ErrInvalidInput, domain.MaxOrderNumberLength)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}

// validateCalendarRules проверяет слот против календарных правил бизнеса
// Порядок проверок фиксированный: будущее → открытый день → рабочие часы
// Праздники проверяются отдельно, так как требуют внешнего источника
func validateCalendarRules(start, now time.Time, biz *domain.Business) *domain.SchedulingError {
	// 1. Слот должен быть в будущем (строго)
	if !start.After(now) {
		return domain.NewPastRejection()
	}

	// 2. День недели должен быть открыт
	if !biz.IsOpenOn(start.Weekday()) {
		return domain.NewClosedDayRejection()
	}

	// 3. Время должно попадать в рабочее окно [start, end)
	t := types.NewTimeString(start)
	if t.IsBefore(biz.WorkDayStart) || !t.IsBefore(biz.WorkDayEnd) {
		return domain.NewOutsideHoursRejection(biz.WorkDayStart, biz.WorkDayEnd)
	}

	return nil
}

// validateNotHoliday проверяет, что дата слота не является публичным праздником
// В сообщении предпочитается локализованное имя праздника
func validateNotHoliday(start time.Time, holidayDates map[string]nager.Holiday) *domain.SchedulingError {
	dateKey := start.Format(domain.DateFormat)

	holiday, isHoliday := holidayDates[dateKey]
	if !isHoliday {
		return nil
	}

	return domain.NewHolidayRejection(holiday.DisplayName())
}

// dedupeServiceIDs отбрасывает нулевые и повторяющиеся ID услуг, сохраняя порядок
func dedupeServiceIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}

// buildServiceLines строит снапшот строк услуг с ценами на момент бронирования
func buildServiceLines(offerings []*domain.ServiceOffering) []domain.ServiceLine {
	lines := make([]domain.ServiceLine, 0, len(offerings))
	for _, offering := range offerings {
		lines = append(lines, domain.ServiceLine{
			ServiceID:      offering.ID,
			Name:           offering.Name,
			Category:       offering.Category,
			PriceAtBooking: offering.Price,
		})
	}
	return lines
}

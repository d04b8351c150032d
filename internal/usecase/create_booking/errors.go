package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

var (
	// ErrServiceNotFound возвращается, когда хотя бы одна из запрошенных услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// CapacityConflictError возвращается, когда слоту не хватает мест.
// Несет имена конфликтующих услуг и ближайшие свободные альтернативы,
// обработчик HTTP извлекает их через errors.As
type CapacityConflictError struct {
	ServiceNames []string
	Suggestions  []types.TimeString

	// Raced выставляется, когда конфликт обнаружен финальной перепроверкой:
	// слот заняли между предварительной проверкой и записью
	Raced bool
}

// Error возвращает человекочитаемое описание конфликта
func (e *CapacityConflictError) Error() string {
	if e.Raced {
		return fmt.Sprintf("slot was just booked by another customer: %s", strings.Join(e.ServiceNames, ", "))
	}
	return fmt.Sprintf("no capacity left for: %s", strings.Join(e.ServiceNames, ", "))
}

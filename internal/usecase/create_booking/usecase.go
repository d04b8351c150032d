package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	customerRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/customer"
	"github.com/lunanails/NS-BookingService/internal/integrations/calendarsync"
	"github.com/lunanails/NS-BookingService/internal/integrations/mailer"
	"github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	"github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
)

// UseCase use case создания записи. Координирует проверку вместимости,
// поиск или создание клиента, транзакционную запись и best-effort
// побочные действия (календарь, письмо, сброс кэша)
type UseCase struct {
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	checker         CapacityChecker
	suggester       SlotSuggester
	calendarClient  CalendarSyncClient
	mailerClient    MailerClient
	invalidator     AvailabilityInvalidator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// calendarClient, mailerClient и invalidator могут быть nil, тогда
// соответствующее побочное действие пропускается
func NewUseCase(
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	checker CapacityChecker,
	suggester SlotSuggester,
	calendarClient CalendarSyncClient,
	mailerClient MailerClient,
	invalidator AvailabilityInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		checker:         checker,
		suggester:       suggester,
		calendarClient:  calendarClient,
		mailerClient:    mailerClient,
		invalidator:     invalidator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Финальная перепроверка вместимости и вставки выполняются в сериализуемой
// транзакции, чтобы параллельные бронирования не переполнили слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, date=%s, time=%s, items=%d",
		req.Customer.Email, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Items))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные услуги
	serviceIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}

	services, err := uc.catalogRepo.GetActiveByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(req.Items) {
		uc.logger.Warn("CreateBooking: requested %d services, found %d active",
			len(req.Items), len(services))
		return nil, ErrServiceNotFound
	}

	servicesByID := make(map[uuid.UUID]*domain.Service, len(services))
	for _, service := range services {
		servicesByID[service.ID] = service
	}

	// 3. Предварительная проверка вместимости до создания клиента
	checkReq := &check_booking.Request{
		Date:  req.Date,
		Time:  req.StartTime,
		Items: checkItems(req.Items),
	}

	check, err := uc.checker.Execute(ctx, checkReq)
	if err != nil {
		uc.logger.Error("CreateBooking: capacity check failed: %v", err)
		return nil, fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
	}
	if !check.CanBook {
		uc.logger.Info("CreateBooking: capacity conflict for %v on %s %s",
			check.Conflicts, req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, uc.conflictError(ctx, req, check.Conflicts, false)
	}

	// 4. Находим или создаем клиента по email
	customer, err := uc.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	// 5. Перепроверка и вставки в одной сериализуемой транзакции
	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Финальная перепроверка: слот могли занять после шага 3
		recheck, err := uc.checker.Execute(txCtx, checkReq)
		if err != nil {
			uc.logger.Error("CreateBooking: final capacity check failed: %v", err)
			return fmt.Errorf("%w: final capacity check failed: %v", ErrInternal, err)
		}
		if !recheck.CanBook {
			uc.logger.Warn("CreateBooking: slot taken between check and insert: %v", recheck.Conflicts)
			return &CapacityConflictError{ServiceNames: recheck.Conflicts, Raced: true}
		}

		// 5.2. Создаем запись
		appt := &domain.Appointment{
			CustomerID: customer.ID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			Status:     domain.StatusConfirmed,
			Notes:      req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 5.3. Привязываем услуги с фиксацией цены на момент записи
		items := make([]domain.AppointmentService, 0, len(req.Items))
		for _, item := range req.Items {
			service := servicesByID[item.ServiceID]
			items = append(items, domain.AppointmentService{
				AppointmentID:  created.ID,
				ServiceID:      item.ServiceID,
				Quantity:       item.Quantity,
				PriceAtBooking: service.Price,
				ServiceName:    service.Name,
			})
		}

		if err := uc.appointmentRepo.LinkServices(txCtx, created.ID, items); err != nil {
			uc.logger.Error("CreateBooking: failed to link services: %v", err)
			return fmt.Errorf("%w: failed to link services: %v", ErrInternal, err)
		}

		created.Services = items
		result = created
		return nil
	})

	if err != nil {
		var conflict *CapacityConflictError
		if errors.As(err, &conflict) {
			// Подбираем альтернативы вне транзакции
			return nil, uc.conflictError(ctx, req, conflict.ServiceNames, true)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%s", result.ID)

	// 6. Побочные действия после коммита, сбои не откатывают запись
	uc.syncCalendar(ctx, result, customer)
	uc.sendConfirmation(ctx, result, customer)
	uc.invalidateCache(ctx, result)

	return buildResponse(result), nil
}

// resolveCustomer находит клиента по email или создает нового
func (uc *UseCase) resolveCustomer(ctx context.Context, info CustomerInfo) (*domain.Customer, error) {
	customer, err := uc.customerRepo.GetByEmail(ctx, info.Email)
	if err == nil {
		uc.logger.Info("CreateBooking: found existing customer id=%s", customer.ID)
		return customer, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateBooking: failed to get customer by email: %v", err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Email:     info.Email,
		Phone:     info.Phone,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created new customer id=%s", created.ID)
	return created, nil
}

// conflictError собирает ошибку конфликта с альтернативными слотами.
// Сбой подбора альтернатив не скрывает сам конфликт
func (uc *UseCase) conflictError(ctx context.Context, req *Request, conflicts []string, raced bool) error {
	conflict := &CapacityConflictError{ServiceNames: conflicts, Raced: raced}

	serviceIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}

	suggestions, err := uc.suggester.Suggest(ctx, &get_available_slots.SuggestRequest{
		Date:          req.Date,
		ServiceIDs:    serviceIDs,
		PreferredTime: req.StartTime,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to suggest alternative slots: %v", err)
		return conflict
	}

	conflict.Suggestions = suggestions.Suggestions
	return conflict
}

// syncCalendar создает событие в календаре салона и сохраняет его ID
func (uc *UseCase) syncCalendar(ctx context.Context, appt *domain.Appointment, customer *domain.Customer) {
	if uc.calendarClient == nil {
		return
	}

	names := make([]string, 0, len(appt.Services))
	for _, item := range appt.Services {
		names = append(names, item.ServiceName)
	}

	eventID, err := uc.calendarClient.CreateEvent(ctx, &calendarsync.EventRequest{
		Title:        fmt.Sprintf("Booking: %s", customer.FullName()),
		Date:         appt.Date.Format(domain.DateFormat),
		StartTime:    appt.StartTime.String(),
		DurationMins: domain.DefaultSlotDurationMinutes,
		CustomerName: customer.FullName(),
		Services:     names,
		Notes:        appt.Notes,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: calendar sync failed for appointment id=%s: %v", appt.ID, err)
		return
	}

	if err := uc.appointmentRepo.SetCalendarEventID(ctx, appt.ID, eventID); err != nil {
		uc.logger.Warn("CreateBooking: failed to store calendar event id for appointment id=%s: %v", appt.ID, err)
	}
}

// sendConfirmation отправляет письмо-подтверждение записи
func (uc *UseCase) sendConfirmation(ctx context.Context, appt *domain.Appointment, customer *domain.Customer) {
	if uc.mailerClient == nil {
		return
	}

	lines := make([]mailer.ServiceLine, 0, len(appt.Services))
	total := 0.0
	for _, item := range appt.Services {
		lines = append(lines, mailer.ServiceLine{
			Name:     item.ServiceName,
			Quantity: item.Quantity,
			Price:    item.PriceAtBooking,
		})
		total += item.PriceAtBooking * float64(item.Quantity)
	}

	err := uc.mailerClient.SendConfirmation(ctx, &mailer.ConfirmationRequest{
		To:            customer.Email,
		CustomerName:  customer.FullName(),
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		Services:      lines,
		TotalPrice:    total,
		AppointmentID: appt.ID.String(),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: confirmation email failed for appointment id=%s: %v", appt.ID, err)
	}

	err = uc.mailerClient.SendAdminNotification(ctx, &mailer.AdminNotificationRequest{
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		Services:      lines,
		TotalPrice:    total,
		AppointmentID: appt.ID.String(),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: admin notification failed for appointment id=%s: %v", appt.ID, err)
	}
}

// invalidateCache сбрасывает кэш доступности за день записи
func (uc *UseCase) invalidateCache(ctx context.Context, appt *domain.Appointment) {
	if uc.invalidator == nil {
		return
	}

	if err := uc.invalidator.InvalidateDate(ctx, appt.Date); err != nil {
		uc.logger.Warn("CreateBooking: cache invalidation failed for date=%s: %v",
			appt.Date.Format(domain.DateFormat), err)
	}
}

// checkItems конвертирует услуги запроса в модель проверки вместимости
func checkItems(items []Item) []check_booking.Item {
	result := make([]check_booking.Item, 0, len(items))
	for _, item := range items {
		result = append(result, check_booking.Item{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}
	return result
}

// buildResponse конвертирует созданную запись в response
func buildResponse(appt *domain.Appointment) *Response {
	total := 0.0
	for _, item := range appt.Services {
		total += item.PriceAtBooking * float64(item.Quantity)
	}

	return &Response{
		ID:         appt.ID,
		CustomerID: appt.CustomerID,
		Date:       appt.Date,
		StartTime:  appt.StartTime,
		Status:     string(appt.Status),
		Notes:      appt.Notes,
		Services:   appt.Services,
		TotalPrice: total,
		CreatedAt:  appt.CreatedAt,
	}
}

package mailer

// ConfirmationRequest модель письма-подтверждения записи
type ConfirmationRequest struct {
	To            string        `json:"to"`
	CustomerName  string        `json:"customer_name"`
	Date          string        `json:"date"`       // YYYY-MM-DD
	StartTime     string        `json:"start_time"` // HH:MM
	Services      []ServiceLine `json:"services"`
	TotalPrice    float64       `json:"total_price"`
	AppointmentID string        `json:"appointment_id"`
}

// ServiceLine строка услуги в письме
type ServiceLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// AdminNotificationRequest модель уведомления администратора о новой записи.
// Адрес получателя подставляется клиентом из конфигурации
type AdminNotificationRequest struct {
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	Date          string        `json:"date"`       // YYYY-MM-DD
	StartTime     string        `json:"start_time"` // HH:MM
	Services      []ServiceLine `json:"services"`
	TotalPrice    float64       `json:"total_price"`
	AppointmentID string        `json:"appointment_id"`
}

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

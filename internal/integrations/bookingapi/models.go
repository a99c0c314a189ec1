package bookingapi

import (
	"encoding/json"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// envelope общий конверт ответа booking API
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *errorBody      `json:"error,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Service услуга в ответе GET /booking/services
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

// AvailableDate день в ответе GET /booking/available-dates
type AvailableDate struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	Available bool   `json:"available"`
	Slots     int    `json:"slots"`
}

// TimeSlot слот в ответе GET /booking/available-slots
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
	Available bool   `json:"available"`
}

// ClientContact контактные данные клиента в запросе на бронирование
type ClientContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CreateBookingRequest тело POST /booking/create
type CreateBookingRequest struct {
	ServiceID       string        `json:"serviceId"`
	PractitionerID  *string       `json:"practitionerId,omitempty"`
	Date            string        `json:"date"`
	TimeSlot        string        `json:"timeSlot"`
	Client          ClientContact `json:"client"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentIntentID *string       `json:"paymentIntentId,omitempty"`
}

// CreateBookingResponse данные ответа POST /booking/create
type CreateBookingResponse struct {
	BookingID        string `json:"bookingId"`
	ConfirmationCode string `json:"confirmationCode"`
	Status           string `json:"status"`
}

// Booking бронирование в ответах /booking/:id
type Booking struct {
	ID               string `json:"id"`
	ServiceID        string `json:"serviceId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmationCode"`
	Notes            string `json:"notes,omitempty"`
}

type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type rescheduleRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateBookingRequest тело PATCH /booking/:id
type UpdateBookingRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type paymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (s Service) toDomain() domain.ServiceOption {
	return domain.ServiceOption{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
	}
}

func (d AvailableDate) toDomain() domain.BookingDate {
	return domain.BookingDate{
		Date:      d.Date,
		DayOfWeek: d.DayOfWeek,
		Available: d.Available,
		Slots:     d.Slots,
	}
}

func (t TimeSlot) toDomain() domain.BookingTimeSlot {
	return domain.BookingTimeSlot{
		ID:        t.ID,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Duration:  t.Duration,
		Available: t.Available,
	}
}

func (b Booking) toDomain() *domain.BookingDetails {
	return &domain.BookingDetails{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
		ConfirmationCode: b.ConfirmationCode,
		Notes:            b.Notes,
	}
}

package list_submissions

import (
	"time"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// SubmissionResponse HTTP response model
type SubmissionResponse struct {
	BookingID        string    `json:"bookingId"`
	BookingReference string    `json:"bookingReference"`
	Status           string    `json:"status"`
	ServiceID        string    `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	Date             string    `json:"date"`
	TimeSlotID       string    `json:"timeSlotId"`
	StartTime        string    `json:"startTime"`
	PaymentMethod    string    `json:"paymentMethod,omitempty"`
	AmountCents      int64     `json:"amountCents"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func fromSubmissions(list []domain.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, SubmissionResponse{
			BookingID:        s.BookingID,
			BookingReference: s.BookingReference,
			Status:           s.Status,
			ServiceID:        s.ServiceID,
			ServiceName:      s.ServiceName,
			Date:             s.BookingDate,
			TimeSlotID:       s.TimeSlotID,
			StartTime:        s.StartTime,
			PaymentMethod:    string(s.PaymentMethod),
			AmountCents:      s.AmountCents,
			CreatedAt:        s.CreatedAt,
			UpdatedAt:        s.UpdatedAt,
		})
	}
	return out
}

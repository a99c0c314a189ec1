package reschedule_booking

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date       string `json:"date"`
	TimeSlotID string `json:"timeSlotId"`
}

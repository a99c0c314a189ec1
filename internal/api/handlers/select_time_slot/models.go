package select_time_slot

// SelectTimeSlotRequest HTTP request model
type SelectTimeSlotRequest struct {
	TimeSlotID string `json:"timeSlotId"`
}

package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r *CancelBookingRequest) reason() string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}

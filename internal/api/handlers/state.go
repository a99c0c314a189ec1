package handlers

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type ServiceView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

type SelectionView struct {
	ServiceID      string `json:"serviceId"`
	PractitionerID string `json:"practitionerId,omitempty"`
	IsRecurring    bool   `json:"isRecurring"`
	Frequency      string `json:"frequency,omitempty"`
	Sessions       int    `json:"sessions,omitempty"`
}

type DateView struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	Available bool   `json:"available"`
	Slots     int    `json:"slots"`
}

type TimeSlotView struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
	Available bool   `json:"available"`
}

type ClientView struct {
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Email                  string `json:"email,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	IsNewClient            bool   `json:"isNewClient"`
	Notes                  string `json:"notes,omitempty"`
}

type ConfirmationView struct {
	PaymentMethod              string `json:"paymentMethod"`
	CancellationPolicyAccepted bool   `json:"acceptCancellationPolicy"`
	DetailsConfirmed           bool   `json:"detailsConfirmed"`
}

// PaymentIntentView платежное намерение для клиентского платежного SDK
type PaymentIntentView struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type APIErrorView struct {
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Resource domain.Resource `json:"resource,omitempty"`
}

// StateView представление состояния мастера для клиента
type StateView struct {
	CurrentStep    domain.StepID   `json:"currentStep"`
	CompletedSteps []domain.StepID `json:"completedSteps"`

	SelectedService  *ServiceView       `json:"selectedService,omitempty"`
	ServiceSelection *SelectionView     `json:"serviceSelection,omitempty"`
	SelectedDate     *DateView          `json:"selectedDate,omitempty"`
	SelectedTimeSlot *TimeSlotView      `json:"selectedTimeSlot,omitempty"`
	ClientInfo       *ClientView        `json:"clientInfo,omitempty"`
	Confirmation     *ConfirmationView  `json:"confirmation,omitempty"`
	PaymentIntent    *PaymentIntentView `json:"paymentIntent,omitempty"`

	AvailableServices  []ServiceView  `json:"availableServices"`
	AvailableDates     []DateView     `json:"availableDates"`
	AvailableTimeSlots []TimeSlotView `json:"availableTimeSlots"`

	Loading  map[domain.Resource]bool `json:"loading"`
	APIError *APIErrorView            `json:"apiError,omitempty"`

	BookingComplete  bool   `json:"bookingComplete"`
	BookingReference string `json:"bookingReference,omitempty"`
	BookingID        string `json:"bookingId,omitempty"`
}

// SessionResponse ответ с состоянием сессии
type SessionResponse struct {
	SessionID      string                 `json:"sessionId"`
	State          StateView              `json:"state"`
	NextEnabled    bool                   `json:"nextEnabled"`
	ConfirmEnabled bool                   `json:"confirmEnabled"`
	Notifications  []session.Notification `json:"notifications,omitempty"`
}

// NewSessionResponse собирает ответ. Уведомления передаются только там, где лента вычитывается
func NewSessionResponse(sessionID string, s wizard.State, notifications []session.Notification) SessionResponse {
	return SessionResponse{
		SessionID:      sessionID,
		State:          FromState(s),
		NextEnabled:    wizard.NextEnabled(s),
		ConfirmEnabled: wizard.ConfirmEnabled(s),
		Notifications:  notifications,
	}
}

// FromState конвертирует состояние мастера в HTTP модель
func FromState(s wizard.State) StateView {
	v := StateView{
		CurrentStep:        s.CurrentStep,
		CompletedSteps:     s.CompletedSteps.Steps(),
		AvailableServices:  make([]ServiceView, 0, len(s.AvailableServices)),
		AvailableDates:     make([]DateView, 0, len(s.AvailableDates)),
		AvailableTimeSlots: make([]TimeSlotView, 0, len(s.AvailableTimeSlots)),
		Loading:            make(map[domain.Resource]bool, len(domain.AllResources)),
		BookingComplete:    s.BookingComplete,
		BookingReference:   s.BookingReference,
		BookingID:          s.BookingID,
	}

	for _, svc := range s.AvailableServices {
		v.AvailableServices = append(v.AvailableServices, serviceView(svc))
	}
	for _, d := range s.AvailableDates {
		v.AvailableDates = append(v.AvailableDates, dateView(d))
	}
	for _, slot := range s.AvailableTimeSlots {
		v.AvailableTimeSlots = append(v.AvailableTimeSlots, slotView(slot))
	}
	for _, r := range domain.AllResources {
		v.Loading[r] = s.Loading.Get(r)
	}

	if s.SelectedService != nil {
		sv := serviceView(*s.SelectedService)
		v.SelectedService = &sv
	}
	if sel := s.ServiceSelection; sel != nil {
		v.ServiceSelection = &SelectionView{
			ServiceID:      sel.ServiceID,
			PractitionerID: sel.PractitionerID,
			IsRecurring:    sel.IsRecurring,
			Frequency:      string(sel.Frequency),
			Sessions:       sel.Sessions,
		}
	}
	if s.SelectedDate != nil {
		dv := dateView(*s.SelectedDate)
		v.SelectedDate = &dv
	}
	if s.SelectedTimeSlot != nil {
		tv := slotView(*s.SelectedTimeSlot)
		v.SelectedTimeSlot = &tv
	}
	if c := s.ClientInfo; c != nil {
		v.ClientInfo = &ClientView{
			FirstName:              c.FirstName,
			LastName:               c.LastName,
			Email:                  c.Email,
			Phone:                  c.Phone,
			PreferredContactMethod: string(c.PreferredContactMethod),
			IsNewClient:            c.IsNewClient,
			Notes:                  c.Notes,
		}
	}
	if c := s.Confirmation; c != nil {
		v.Confirmation = &ConfirmationView{
			PaymentMethod:              string(c.PaymentMethod),
			CancellationPolicyAccepted: c.CancellationPolicyAccepted,
			DetailsConfirmed:           c.DetailsConfirmed,
		}
	}
	if p := s.PaymentIntent; p != nil {
		v.PaymentIntent = &PaymentIntentView{
			ID:           p.PaymentIntentID,
			ClientSecret: p.ClientSecret,
			Amount:       p.Amount,
			Currency:     p.Currency,
		}
	}
	if e := s.APIError; e != nil {
		v.APIError = &APIErrorView{Code: string(e.Code), Message: e.Message, Resource: e.Resource}
	}

	return v
}

// BookingView бронирование из внешнего API
type BookingView struct {
	ID               string `json:"id"`
	ServiceID        string `json:"serviceId,omitempty"`
	Date             string `json:"date,omitempty"`
	StartTime        string `json:"startTime,omitempty"`
	EndTime          string `json:"endTime,omitempty"`
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmationCode,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

func FromBooking(b *domain.BookingDetails) BookingView {
	return BookingView{
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

func serviceView(s domain.ServiceOption) ServiceView {
	return ServiceView{ID: s.ID, Name: s.Name, Description: s.Description, Duration: s.Duration, Price: s.Price}
}

func dateView(d domain.BookingDate) DateView {
	return DateView{Date: d.Date, DayOfWeek: d.DayOfWeek, Available: d.Available, Slots: d.Slots}
}

func slotView(s domain.BookingTimeSlot) TimeSlotView {
	return TimeSlotView{ID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime, Duration: s.Duration, Available: s.Available}
}

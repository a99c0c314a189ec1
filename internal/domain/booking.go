package domain

import (
	"strings"
	"time"
)

// ContactMethod is the client's preferred contact channel
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactText  ContactMethod = "text"
)

// PaymentMethod is how the client intends to pay for the consultation
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentPayLater     PaymentMethod = "pay_later"
)

// RequiresPaymentIntent returns true if the method is charged through a payment intent
func (m PaymentMethod) RequiresPaymentIntent() bool {
	return m == PaymentCard
}

// RecurringFrequency is the cadence of a recurring booking
type RecurringFrequency string

const (
	FrequencyWeekly   RecurringFrequency = "weekly"
	FrequencyBiweekly RecurringFrequency = "biweekly"
	FrequencyMonthly  RecurringFrequency = "monthly"
)

// ServiceOption represents a consultation the firm offers
type ServiceOption struct {
	ID          string
	Name        string
	Description string
	Duration    int     // minutes
	Price       float64 // dollars
}

// PriceInCents returns the price as an integer amount of cents
func (s *ServiceOption) PriceInCents() int64 {
	if s.Price <= 0 {
		return 0
	}
	return int64(s.Price*100 + 0.5)
}

// IsFree returns true if the service has no charge
func (s *ServiceOption) IsFree() bool {
	return s.PriceInCents() == 0
}

// ServiceSelection is the validated output of the service step
type ServiceSelection struct {
	ServiceID      string
	PractitionerID string
	IsRecurring    bool
	Frequency      RecurringFrequency
	Sessions       int
}

// BookingDate represents a calendar day with its availability
type BookingDate struct {
	Date      string // YYYY-MM-DD
	DayOfWeek string
	Available bool
	Slots     int // number of available slots
}

// HasAvailability returns true if the date can be booked
func (d *BookingDate) HasAvailability() bool {
	return d.Available && d.Slots > 0
}

// ClientInformation represents the contact details of the person booking
type ClientInformation struct {
	FirstName              string
	LastName               string
	Email                  string
	Phone                  string
	PreferredContactMethod ContactMethod
	IsNewClient            bool
	Notes                  string
	TermsAccepted          bool
}

// FullName returns first and last name joined with a space
func (c *ClientInformation) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ConfirmationDetails is the validated output of the confirmation step
type ConfirmationDetails struct {
	PaymentMethod              PaymentMethod
	CancellationPolicyAccepted bool
	DetailsConfirmed           bool
}

// PaymentIntent is an upstream payment intent created before confirmation
type PaymentIntent struct {
	ClientSecret    string
	PaymentIntentID string
	Amount          int64 // cents
	Currency        string
}

// BookingConfirmation is what the upstream API returns for a created booking
type BookingConfirmation struct {
	BookingID        string
	ConfirmationCode string
	Status           string
}

// BookingDetails is a booking as returned by GET /booking/:id
type BookingDetails struct {
	ID               string
	ServiceID        string
	Date             string
	StartTime        string
	EndTime          string
	Status           string
	ConfirmationCode string
	Notes            string
}

// Submission statuses
const (
	SubmissionConfirmed   = "confirmed"
	SubmissionCancelled   = "cancelled"
	SubmissionRescheduled = "rescheduled"
)

// Submission is a journal record of a completed wizard
type Submission struct {
	ID               int64
	SessionID        string
	BookingID        string
	BookingReference string
	Status           string
	ServiceID        string
	ServiceName      string
	BookingDate      string
	TimeSlotID       string
	StartTime        string
	ClientName       string
	ClientEmail      string
	PaymentMethod    PaymentMethod
	PaymentIntentID  *string
	AmountCents      int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

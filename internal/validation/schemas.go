package validation

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// Сообщения, которые показываются пользователю без изменений
const (
	MsgServiceRequired        = "Please select a service"
	MsgFrequencyRequired      = "Please select how often you would like to meet"
	MsgFrequencyInvalid       = "Please select a valid frequency"
	MsgSessionsRange          = "Recurring bookings require between 2 and 12 sessions"
	MsgRecurringFlag          = "Recurring must be true or false"
	MsgDateRequired           = "Please select a date"
	MsgDateInvalid            = "Please select a valid date"
	MsgTimeSlotRequired       = "Please select a time slot"
	MsgFirstNameRequired      = "First name is required"
	MsgFirstNameMin           = "First name must be at least 2 characters"
	MsgFirstNameMax           = "First name must be less than 50 characters"
	MsgFirstNameChars         = "First name can only contain letters, spaces, hyphens, and apostrophes"
	MsgLastNameRequired       = "Last name is required"
	MsgLastNameMin            = "Last name must be at least 2 characters"
	MsgLastNameMax            = "Last name must be less than 50 characters"
	MsgLastNameChars          = "Last name can only contain letters, spaces, hyphens, and apostrophes"
	MsgEmailMin               = "Email must be at least 5 characters"
	MsgEmailMax               = "Email must be less than 100 characters"
	MsgEmailInvalid           = "Please enter a valid email address"
	MsgEmailRequired          = "Email is required when email is your preferred contact method"
	MsgPhoneMin               = "Phone number must be at least 10 characters"
	MsgPhoneInvalid           = "Please enter a valid phone number"
	MsgPhoneRequired          = "Phone number is required when phone is your preferred contact method"
	MsgContactMethodRequired  = "Please select a preferred contact method"
	MsgContactMethodInvalid   = "Preferred contact method must be email, phone, or text"
	MsgNewClientFlag          = "Please tell us whether you are a new client"
	MsgNotesMax               = "Notes must be less than 500 characters"
	MsgAcceptTerms            = "You must accept the terms and conditions"
	MsgPaymentMethodRequired  = "Payment method is required"
	MsgPaymentMethodInvalid   = "Please select a valid payment method"
	MsgAcceptCancellation     = "You must accept the cancellation policy"
	MsgDetailsConfirmed       = "You must confirm your booking details"
	MsgInvalidValue           = "Invalid value"
)

// Имена полей
const (
	FieldServiceID      = "serviceId"
	FieldPractitionerID = "practitionerId"
	FieldIsRecurring    = "isRecurring"
	FieldFrequency      = "frequency"
	FieldSessions       = "sessions"

	FieldDate       = "date"
	FieldTimeSlotID = "timeSlotId"

	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldContactMethod = "preferredContactMethod"
	FieldIsNewClient   = "isNewClient"
	FieldNotes         = "notes"
	FieldAcceptTerms   = "acceptTerms"

	FieldPaymentMethod            = "paymentMethod"
	FieldAcceptCancellationPolicy = "acceptCancellationPolicy"
	FieldDetailsConfirmed         = "detailsConfirmed"
)

// DateSelection результат шага выбора даты и времени
type DateSelection struct {
	Date       string
	TimeSlotID string
}

// ServiceSelectionSchema схема шага выбора услуги
var ServiceSelectionSchema = &Schema[domain.ServiceSelection]{
	name: "serviceSelection",
	rules: []fieldRule{
		{
			field: FieldServiceID, kind: kindString, normalize: trim, tags: "required",
			messages: map[string]string{"required": MsgServiceRequired},
			fallback: MsgServiceRequired,
		},
		{
			field: FieldPractitionerID, kind: kindString, normalize: trim,
			fallback: MsgInvalidValue,
		},
		{
			field: FieldIsRecurring, kind: kindBool,
			fallback: MsgRecurringFlag,
		},
		{
			field: FieldFrequency, kind: kindString, normalize: trimLower,
			tags:     "omitempty,oneof=weekly biweekly monthly",
			messages: map[string]string{"oneof": MsgFrequencyInvalid},
			fallback: MsgFrequencyInvalid,
		},
		{
			field: FieldSessions, kind: kindInt,
			tags:     "omitempty,min=2,max=12",
			messages: map[string]string{"min": MsgSessionsRange, "max": MsgSessionsRange},
			fallback: MsgSessionsRange,
		},
	},
	refine: func(n Record, errs Errors) {
		recurring, _ := n[FieldIsRecurring].(bool)
		if !recurring {
			return
		}
		if f, _ := n[FieldFrequency].(string); f == "" {
			errs.setOnce(FieldFrequency, MsgFrequencyRequired)
		}
		if s, _ := n[FieldSessions].(int); s == 0 {
			errs.setOnce(FieldSessions, MsgSessionsRange)
		}
	},
	build: func(n Record) domain.ServiceSelection {
		sel := domain.ServiceSelection{
			ServiceID:      n[FieldServiceID].(string),
			PractitionerID: n[FieldPractitionerID].(string),
			IsRecurring:    n[FieldIsRecurring].(bool),
		}
		// Параметры повторения имеют смысл только для повторяющихся записей
		if sel.IsRecurring {
			sel.Frequency = domain.RecurringFrequency(n[FieldFrequency].(string))
			sel.Sessions = n[FieldSessions].(int)
		}
		return sel
	},
	defaults: Record{
		FieldServiceID:      "",
		FieldPractitionerID: "",
		FieldIsRecurring:    false,
		FieldFrequency:      "",
		FieldSessions:       0,
	},
}

// DateSelectionSchema схема шага выбора даты и времени
var DateSelectionSchema = &Schema[DateSelection]{
	name: "dateSelection",
	rules: []fieldRule{
		{
			field: FieldDate, kind: kindString, normalize: trim,
			tags:     "required,datetime=" + domain.DateFormat,
			messages: map[string]string{"required": MsgDateRequired, "datetime": MsgDateInvalid},
			fallback: MsgDateInvalid,
		},
		{
			field: FieldTimeSlotID, kind: kindString, normalize: trim, tags: "required",
			messages: map[string]string{"required": MsgTimeSlotRequired},
			fallback: MsgTimeSlotRequired,
		},
	},
	build: func(n Record) DateSelection {
		return DateSelection{
			Date:       n[FieldDate].(string),
			TimeSlotID: n[FieldTimeSlotID].(string),
		}
	},
	defaults: Record{
		FieldDate:       "",
		FieldTimeSlotID: "",
	},
}

// ClientInfoSchema схема шага контактных данных клиента
var ClientInfoSchema = &Schema[domain.ClientInformation]{
	name: "clientInformation",
	rules: []fieldRule{
		{
			field: FieldFirstName, kind: kindString, normalize: trim,
			tags: "required,min=2,max=50,personname",
			messages: map[string]string{
				"required":   MsgFirstNameRequired,
				"min":        MsgFirstNameMin,
				"max":        MsgFirstNameMax,
				"personname": MsgFirstNameChars,
			},
			fallback: MsgFirstNameRequired,
		},
		{
			field: FieldLastName, kind: kindString, normalize: trim,
			tags: "required,min=2,max=50,personname",
			messages: map[string]string{
				"required":   MsgLastNameRequired,
				"min":        MsgLastNameMin,
				"max":        MsgLastNameMax,
				"personname": MsgLastNameChars,
			},
			fallback: MsgLastNameRequired,
		},
		{
			field: FieldEmail, kind: kindString, normalize: trimLower,
			tags: "omitempty,min=5,max=100,email",
			messages: map[string]string{
				"min":   MsgEmailMin,
				"max":   MsgEmailMax,
				"email": MsgEmailInvalid,
			},
			fallback: MsgEmailInvalid,
		},
		{
			field: FieldPhone, kind: kindString, normalize: collapseSpaces,
			tags: "omitempty,min=10,phone",
			messages: map[string]string{
				"min":   MsgPhoneMin,
				"phone": MsgPhoneInvalid,
			},
			fallback: MsgPhoneInvalid,
		},
		{
			field: FieldContactMethod, kind: kindString, normalize: trimLower,
			tags: "required,oneof=email phone text",
			messages: map[string]string{
				"required": MsgContactMethodRequired,
				"oneof":    MsgContactMethodInvalid,
			},
			fallback: MsgContactMethodInvalid,
		},
		{
			field: FieldIsNewClient, kind: kindBool,
			fallback: MsgNewClientFlag,
		},
		{
			field: FieldNotes, kind: kindString, normalize: trim,
			tags:     "omitempty,max=500",
			messages: map[string]string{"max": MsgNotesMax},
			fallback: MsgNotesMax,
		},
		{
			field: FieldAcceptTerms, kind: kindLiteralTrue,
			messages: map[string]string{tagLiteral: MsgAcceptTerms},
		},
	},
	refine: func(n Record, errs Errors) {
		method, ok := n[FieldContactMethod].(string)
		if !ok {
			return
		}
		switch domain.ContactMethod(method) {
		case domain.ContactPhone:
			if phone, ok := n[FieldPhone].(string); ok && phone == "" {
				errs.setOnce(FieldPhone, MsgPhoneRequired)
			}
		case domain.ContactEmail:
			if email, ok := n[FieldEmail].(string); ok && email == "" {
				errs.setOnce(FieldEmail, MsgEmailRequired)
			}
		}
	},
	build: func(n Record) domain.ClientInformation {
		return domain.ClientInformation{
			FirstName:              n[FieldFirstName].(string),
			LastName:               n[FieldLastName].(string),
			Email:                  n[FieldEmail].(string),
			Phone:                  n[FieldPhone].(string),
			PreferredContactMethod: domain.ContactMethod(n[FieldContactMethod].(string)),
			IsNewClient:            n[FieldIsNewClient].(bool),
			Notes:                  n[FieldNotes].(string),
			TermsAccepted:          true,
		}
	},
	defaults: Record{
		FieldFirstName:     "",
		FieldLastName:      "",
		FieldEmail:         "",
		FieldPhone:         "",
		FieldContactMethod: string(domain.ContactEmail),
		FieldIsNewClient:   true,
		FieldNotes:         "",
		FieldAcceptTerms:   false,
	},
}

// ConfirmationSchema схема шага подтверждения и оплаты
var ConfirmationSchema = &Schema[domain.ConfirmationDetails]{
	name: "confirmation",
	rules: []fieldRule{
		{
			field: FieldPaymentMethod, kind: kindString, normalize: trimLower,
			tags: "required,oneof=card bank_transfer pay_later",
			messages: map[string]string{
				"required": MsgPaymentMethodRequired,
				"oneof":    MsgPaymentMethodInvalid,
			},
			fallback: MsgPaymentMethodRequired,
		},
		{
			field: FieldAcceptCancellationPolicy, kind: kindLiteralTrue,
			messages: map[string]string{tagLiteral: MsgAcceptCancellation},
		},
		{
			field: FieldDetailsConfirmed, kind: kindLiteralTrue,
			messages: map[string]string{tagLiteral: MsgDetailsConfirmed},
		},
	},
	build: func(n Record) domain.ConfirmationDetails {
		return domain.ConfirmationDetails{
			PaymentMethod:              domain.PaymentMethod(n[FieldPaymentMethod].(string)),
			CancellationPolicyAccepted: true,
			DetailsConfirmed:           true,
		}
	},
	defaults: Record{
		FieldPaymentMethod:            "",
		FieldAcceptCancellationPolicy: false,
		FieldDetailsConfirmed:         false,
	},
}

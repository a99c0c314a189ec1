package validation

import "github.com/m04kA/SMC-RecoveryBooking/internal/domain"

// Обратное преобразование: уже сохранённые данные шага -> запись для повторной проверки.
// Используется навигацией, чтобы убедиться, что текущий шаг всё ещё валиден.

// ServiceSelectionRecord строит запись из выбранной услуги
func ServiceSelectionRecord(sel domain.ServiceSelection) Record {
	return Record{
		FieldServiceID:      sel.ServiceID,
		FieldPractitionerID: sel.PractitionerID,
		FieldIsRecurring:    sel.IsRecurring,
		FieldFrequency:      string(sel.Frequency),
		FieldSessions:       sel.Sessions,
	}
}

// DateSelectionRecord строит запись из выбранных даты и слота
func DateSelectionRecord(date, timeSlotID string) Record {
	return Record{
		FieldDate:       date,
		FieldTimeSlotID: timeSlotID,
	}
}

// ClientInfoRecord строит запись из контактных данных
func ClientInfoRecord(info domain.ClientInformation) Record {
	return Record{
		FieldFirstName:     info.FirstName,
		FieldLastName:      info.LastName,
		FieldEmail:         info.Email,
		FieldPhone:         info.Phone,
		FieldContactMethod: string(info.PreferredContactMethod),
		FieldIsNewClient:   info.IsNewClient,
		FieldNotes:         info.Notes,
		FieldAcceptTerms:   info.TermsAccepted,
	}
}

// ConfirmationRecord строит запись из данных подтверждения
func ConfirmationRecord(details domain.ConfirmationDetails) Record {
	return Record{
		FieldPaymentMethod:            string(details.PaymentMethod),
		FieldAcceptCancellationPolicy: details.CancellationPolicyAccepted,
		FieldDetailsConfirmed:         details.DetailsConfirmed,
	}
}

package submission

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/psqlbuilder"
)

const table = "wizard_submissions"

var columns = []string{
	"id",
	"session_id",
	"booking_id",
	"booking_reference",
	"status",
	"service_id",
	"service_name",
	"booking_date",
	"time_slot_id",
	"start_time",
	"client_name",
	"client_email",
	"payment_method",
	"payment_intent_id",
	"amount_cents",
	"created_at",
	"updated_at",
}

// Repository журнал подтвержденных заявок мастера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтвержденную заявку
func (r *Repository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	if s.Status == "" {
		s.Status = domain.SubmissionConfirmed
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"session_id",
			"booking_id",
			"booking_reference",
			"status",
			"service_id",
			"service_name",
			"booking_date",
			"time_slot_id",
			"start_time",
			"client_name",
			"client_email",
			"payment_method",
			"payment_intent_id",
			"amount_cents",
		).
		Values(
			s.SessionID,
			s.BookingID,
			s.BookingReference,
			s.Status,
			s.ServiceID,
			s.ServiceName,
			s.BookingDate,
			s.TimeSlotID,
			s.StartTime,
			s.ClientName,
			s.ClientEmail,
			string(s.PaymentMethod),
			nullString(s.PaymentIntentID),
			s.AmountCents,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// ListBySession получает записи журнала сессии, новые первыми
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]domain.Submission, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []domain.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySession: %v", ErrScanRow, err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySession - iterate rows: %v", ErrExecQuery, err)
	}

	return result, nil
}

// UpdateStatus меняет статус записи по ID бронирования
func (r *Repository) UpdateStatus(ctx context.Context, bookingID, status string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var (
		s               domain.Submission
		paymentMethod   string
		paymentIntentID sql.NullString
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.SessionID,
		&s.BookingID,
		&s.BookingReference,
		&s.Status,
		&s.ServiceID,
		&s.ServiceName,
		&s.BookingDate,
		&s.TimeSlotID,
		&s.StartTime,
		&s.ClientName,
		&s.ClientEmail,
		&paymentMethod,
		&paymentIntentID,
		&s.AmountCents,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.PaymentMethod = domain.PaymentMethod(paymentMethod)
	if paymentIntentID.Valid {
		id := paymentIntentID.String
		s.PaymentIntentID = &id
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

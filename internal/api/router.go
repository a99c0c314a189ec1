package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/confirm_booking"
	createSessionHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/create_session"
	getBookingHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/get_booking"
	getSessionHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/get_session"
	listSubmissionsHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/list_submissions"
	navigateHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/navigate"
	reloadResourceHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/reload_resource"
	rescheduleBookingHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/reschedule_booking"
	resetSessionHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/reset_session"
	selectDateHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/select_date"
	selectServiceHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/select_service"
	selectTimeSlotHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/select_time_slot"
	submitClientInfoHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/submit_client_info"
	submitConfirmationHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/submit_confirmation"
	updateBookingNotesHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/update_booking_notes"
	validateFieldHandler "github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers/validate_field"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/token"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/logger"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/metrics"
)

// Deps зависимости HTTP слоя
type Deps struct {
	Registry *session.Registry
	Tokens   token.Store
	UseCase  *bookingWizard.UseCase
	Logger   *logger.Logger

	// Metrics nil отключает middleware и endpoint метрик
	Metrics     *metrics.Metrics
	MetricsPath string
}

// NewRouter настраивает маршруты /api/v1
func NewRouter(d Deps) *mux.Router {
	log := d.Logger

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(d.Registry, d.Tokens, d.UseCase, log)
	getSession := getSessionHandler.NewHandler(log)
	selectService := selectServiceHandler.NewHandler(d.UseCase, log)
	selectDate := selectDateHandler.NewHandler(d.UseCase, log)
	selectTimeSlot := selectTimeSlotHandler.NewHandler(d.UseCase, log)
	submitClientInfo := submitClientInfoHandler.NewHandler(d.UseCase, log)
	submitConfirmation := submitConfirmationHandler.NewHandler(d.UseCase, log)
	validateField := validateFieldHandler.NewHandler(d.UseCase, log)
	navigate := navigateHandler.NewHandler(d.UseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(d.UseCase, log)
	reloadResource := reloadResourceHandler.NewHandler(d.UseCase, log)
	resetSession := resetSessionHandler.NewHandler(d.UseCase, log)
	getBooking := getBookingHandler.NewHandler(d.UseCase, log)
	updateBookingNotes := updateBookingNotesHandler.NewHandler(d.UseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(d.UseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(d.UseCase, log)
	listSubmissions := listSubmissionsHandler.NewHandler(d.UseCase, log)

	r := mux.NewRouter()

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Создание сессии мастера (bearer токен из Authorization сохраняется за сессией)
	api.HandleFunc("/wizard/sessions", createSession.Handle).Methods(http.MethodPost)

	// ============================================================
	// SESSION ROUTES (требуют существующую сессию)
	// ============================================================

	sessions := api.PathPrefix("/wizard/sessions/{sessionId}").Subrouter()
	sessions.Use(middleware.Session(d.Registry, log))

	sessions.HandleFunc("", getSession.Handle).Methods(http.MethodGet)

	// --- Шаги мастера ---
	sessions.HandleFunc("/service", selectService.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/date", selectDate.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/time-slot", selectTimeSlot.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/client", submitClientInfo.Handle).Methods(http.MethodPut)
	sessions.HandleFunc("/confirmation", submitConfirmation.Handle).Methods(http.MethodPut)
	sessions.HandleFunc("/validate-field", validateField.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/navigate", navigate.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/reload", reloadResource.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/reset", resetSession.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	sessions.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	sessions.HandleFunc("/bookings/{bookingId}", updateBookingNotes.Handle).Methods(http.MethodPatch)
	sessions.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	sessions.HandleFunc("/submissions", listSubmissions.Handle).Methods(http.MethodGet)

	return r
}

package validate_field

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnknownField       = "unknown field for this step"
)

type Handler struct {
	useCase WizardUseCase
	logger  Logger
}

func NewHandler(useCase WizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/validate-field
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/validate-field - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	errs, err := h.useCase.ValidateField(req.Step, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, validation.ErrUnknownField) || errors.Is(err, validation.ErrUnknownStep) {
			h.logger.Warn("POST /wizard/sessions/{id}/validate-field - Unknown field: step=%s, field=%s", req.Step, req.Field)
			handlers.RespondBadRequest(w, msgUnknownField)
			return
		}
		h.logger.Error("POST /wizard/sessions/{id}/validate-field - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ValidateFieldResponse{
		Valid:  !errs.HasErrors(),
		Errors: errs,
	})
}

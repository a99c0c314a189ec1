package create_session

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type SessionRegistry interface {
	Create() *session.Session
	Delete(id string) bool
}

type TokenStore interface {
	Save(ctx context.Context, sessionID, token string) error
}

type WizardUseCase interface {
	LoadServices(ctx context.Context, store *wizard.Store, force bool) (wizard.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

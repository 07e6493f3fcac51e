package users

import (
	"context"

	"staysia/internal/app/handlers/support"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
	domainuser "staysia/internal/domain/user"
)

const checkEmailKey = "users.check_email"

type CheckEmailQuery struct {
	Email string
}

func (q CheckEmailQuery) Key() string { return checkEmailKey }

type EmailAvailability struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}

type CheckEmailHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CheckEmailHandler) Handle(ctx context.Context, q CheckEmailQuery) (EmailAvailability, error) {
	email, err := domainuser.NormalizeEmail(q.Email)
	if err != nil {
		return EmailAvailability{}, err
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return EmailAvailability{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	exists, err := unit.Users().EmailExists(execCtx, email)
	if err != nil {
		return EmailAvailability{}, err
	}
	return EmailAvailability{Email: email, Available: !exists}, nil
}

var _ queries.Handler[CheckEmailQuery, EmailAvailability] = (*CheckEmailHandler)(nil)

package token

import "errors"

var (
	// ErrTokenNotFound токен для сессии не сохранен
	ErrTokenNotFound = errors.New("token storage: token not found")

	// ErrStorage ошибка обращения к хранилищу
	ErrStorage = errors.New("token storage: storage failure")
)

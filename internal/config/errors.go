package config

import "errors"

var (
	// ErrReadConfig файл конфигурации не прочитан
	ErrReadConfig = errors.New("config: failed to read file")
	// ErrInvalidConfig недопустимое значение параметра
	ErrInvalidConfig = errors.New("config: invalid value")
)

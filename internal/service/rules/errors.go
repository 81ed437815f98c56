package rules

import "errors"

var (
	// ErrRulesNotConfigured возвращается, когда правила сообщества отсутствуют
	ErrRulesNotConfigured = errors.New("booking rules not configured")

	// ErrAccessDenied возвращается, когда обновить правила пытается не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

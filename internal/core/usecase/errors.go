package usecase

import "errors"

// Определение ошибок сервиса
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrOperationNotFound = errors.New("operation not found")
	ErrCardNotOnAccount  = errors.New("card does not belong to account")
	ErrAccountNotOwned   = errors.New("account does not belong to user")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

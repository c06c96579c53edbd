package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrForeignKey        = errors.New("foreign key violation")
	ErrUnknown           = errors.New("unknown error")

	ErrUserExists      = errors.New("username or email already exist")
	ErrSessionNotFound = errors.New("session not found")

	ErrInvalidCart        = errors.New("invalid cart")
	ErrNoValidItems       = errors.New("no valid items")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrNotEnoughBalance   = errors.New("not enough balance")
	ErrSettlementConflict = errors.New("settlement conflict")
)

// DatabaseError ошибка слоя хранения. Kind содержит одну из sentinel ошибок выше,
// Detail - пояснение драйвера, если оно есть.
type DatabaseError struct {
	Op     string
	Kind   error
	Detail string
	Err    error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[repository/%s] %s", e.Op, e.Kind.Error())
	}
	return fmt.Sprintf("[repository/%s] %s: %s", e.Op, e.Kind.Error(), e.Err.Error())
}

func (e *DatabaseError) Unwrap() error {
	return e.Kind
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + " - " + e.Message
}

// ValidationError набор ошибок полей. Первая ошибка используется как сообщение для клиента.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// First возвращает первую ошибку поля.
func (e *ValidationError) First() FieldError {
	if len(e.Fields) == 0 {
		return FieldError{}
	}
	return e.Fields[0]
}

type AlreadyPaidError struct {
	Payment *Payment
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("payment %s already paid", e.Payment.ID)
}

func (e *AlreadyPaidError) Is(target error) bool {
	return target == ErrAlreadyPaid
}

type InsufficientFundsError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("balance %s is less than payment amount %s", e.Balance.StringFixed(2), e.Amount.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrNotEnoughBalance
}

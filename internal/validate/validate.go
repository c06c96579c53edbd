// Package validate содержит явные функции проверки входных данных перед записью.
// Каждая функция возвращает nil или *domain.ValidationError со списком ошибок полей.
package validate

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgEmail           = "Email is invalid."
	MsgUsernameLength  = "Username must be between 3 to 25 characters long."
	MsgUsernameChars   = "Username should contain only letters and numbers."
	MsgPassword        = "Password must be at least 6 characters long."
	MsgName            = "Name must be between 3 to 128 characters long."
	MsgCountryName     = "Name is invalid."
	MsgCountryCode     = "Code is invalid."
	MsgCountryEmoji    = "Emoji is invalid."
	MsgAddress         = "Address must be at least 3 characters long."
	MsgPhone           = "Phone is invalid."
	MsgRating          = "Rating should be between 0 and 10."
	MsgPrice           = "Price should be a valid decimal with 2 decimal place maximum"
	MsgIdentifier      = "Identifier is invalid."
	MsgEmptyUpdateBody = "At least one field should be provided."
)

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func instance() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New()
		// ошибка возможна только при пустом имени тега
		_ = engine.RegisterValidation("max_bytes", validateMaxBytes)
	})
	return engine
}

// validateMaxBytes в отличии от тэга max который проверяет длину рун, - проверят длину байт в поле.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

// checker накапливает ошибки полей. По каждому полю сохраняется только первая ошибка.
type checker struct {
	fields []domain.FieldError
	failed map[string]struct{}
}

func newChecker() *checker {
	return &checker{failed: make(map[string]struct{})}
}

func (c *checker) add(field, msg string) {
	if _, ok := c.failed[field]; ok {
		return
	}
	c.failed[field] = struct{}{}
	c.fields = append(c.fields, domain.FieldError{Field: field, Message: msg})
}

// tag проверяет значение тегом validator.
func (c *checker) tag(field string, value any, tag, msg string) {
	if err := instance().Var(value, tag); err != nil {
		c.add(field, msg)
	}
}

func (c *checker) cond(field string, ok bool, msg string) {
	if !ok {
		c.add(field, msg)
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return domain.NewValidationError(c.fields...)
}

// Price проверяет что цена неотрицательна и содержит не более двух знаков после запятой.
func Price(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Round(domain.AmountPlaces))
}

// Identifier разбирает идентификатор из поля field. Неканоническая запись UUID возвращает
// *domain.ValidationError.
func Identifier(field, raw string) (uuid.UUID, error) {
	id, ok := domain.ParseID(raw)
	if !ok {
		return uuid.Nil, errorf(field, MsgIdentifier)
	}
	return id, nil
}

// OptionalIdentifier то же что Identifier, но nil значение пропускается.
func OptionalIdentifier(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil
	}
	id, err := Identifier(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func errorf(field, format string, args ...any) error {
	return domain.NewValidationError(domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

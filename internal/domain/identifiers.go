package domain

import (
	"regexp"

	"github.com/google/uuid"
)

var canonicalUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ParseID разбирает идентификатор только в канонической форме (36 символов с дефисами).
// uuid.Parse сам по себе принимает и urn/фигурные скобки, поэтому формат проверяется заранее.
func ParseID(s string) (uuid.UUID, bool) {
	if !canonicalUUID.MatchString(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package services

import (
	"encoding/hex"
	"strings"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

const numberPrefix = "R"

// OrderNumberGenerator issues numbers shaped like R260314A1B2C3: a prefix,
// the UTC creation date as YYMMDD and six random upper-case hex digits.
type OrderNumberGenerator struct {
	now func() time.Time
}

// NewOrderNumberGenerator uses now for the date part; nil means time.Now.
func NewOrderNumberGenerator(now func() time.Time) OrderNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return OrderNumberGenerator{now: now}
}

func (g OrderNumberGenerator) Generate() (string, error) {
	random, err := uuid.NewRandom()
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", err)
	}
	now := g.now
	if now == nil {
		now = time.Now
	}

	var b strings.Builder
	b.WriteString(numberPrefix)
	b.WriteString(now().UTC().Format("060102"))
	b.WriteString(strings.ToUpper(hex.EncodeToString(random[:3])))
	return b.String(), nil
}

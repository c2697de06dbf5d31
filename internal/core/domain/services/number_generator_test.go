package services_test

import (
	"regexp"
	"testing"
	"time"

	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberGenerator_Generate(t *testing.T) {
	at := time.Date(2026, 3, 14, 23, 59, 0, 0, time.FixedZone("EST", -5*3600))
	gen := services.NewOrderNumberGenerator(func() time.Time { return at })

	seen := make(map[string]struct{})
	for range 50 {
		number, err := gen.Generate()

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^R260315[0-9A-F]{6}$`), number)
		seen[number] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

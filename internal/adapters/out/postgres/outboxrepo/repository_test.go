package outboxrepo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateError(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   int
	}{
		{name: "short", reason: "subscriber down", want: len("subscriber down")},
		{name: "ascii at limit", reason: strings.Repeat("x", maxErrorLength), want: maxErrorLength},
		{name: "ascii over limit", reason: strings.Repeat("x", maxErrorLength+10), want: maxErrorLength},
		// "é" is two bytes; 1023 ASCII bytes put the rune across the limit.
		{name: "rune across limit", reason: strings.Repeat("x", maxErrorLength-1) + "é tail", want: maxErrorLength - 1},
		{name: "multibyte only", reason: strings.Repeat("ж", maxErrorLength), want: maxErrorLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateError(tt.reason)

			assert.Len(t, got, tt.want)
			assert.True(t, utf8.ValidString(got))
			assert.True(t, strings.HasPrefix(tt.reason, got))
		})
	}

	t.Run("invalid input is repaired", func(t *testing.T) {
		got := truncateError("bad \xff byte")

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "bad � byte", got)
	})
}

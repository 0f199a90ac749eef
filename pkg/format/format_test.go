package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"groups millions", "1234567", "1,234,567"},
		{"groups thousands", "1234", "1,234"},
		{"small value unchanged", "999", "999"},
		{"zero", "0", "0"},
		{"unparsable passes through verbatim", "12x34", "12x34"},
		{"empty passes through verbatim", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Count(tt.raw))
		})
	}
}

func TestOptionalCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Placeholder, OptionalCount(nil))

	v := "7654321"
	assert.Equal(t, "7,654,321", OptionalCount(&v))

	raw := "n/a"
	assert.Equal(t, "n/a", OptionalCount(&raw))
}

func TestInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Placeholder, Int64(nil))

	n := int64(1000000)
	assert.Equal(t, "1,000,000", Int64(&n))
}

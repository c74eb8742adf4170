package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinWithAnd(t *testing.T) {
	assert.Equal(t, "a AND b", JoinWithAnd([]string{"a", "b"}))
	assert.Equal(t, "a", JoinWithAnd([]string{"a"}))
}

func TestJoinWithOr(t *testing.T) {
	assert.Equal(t, "a OR b", JoinWithOr([]string{"a", "b"}))
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{"%_", `\%\_`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in), "input=%q", tt.in)
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"user@example", false},
		{"user example@test.com", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}

func TestLeaderPolicy(t *testing.T) {
	t.Run("default requires every field", func(t *testing.T) {
		assert.Equal(t, "name, email, phone, year, class", DefaultLeaderPolicy().Describe())
	})

	t.Run("name email and phone are always required", func(t *testing.T) {
		policy, err := NewLeaderPolicy([]string{"year"})
		require.NoError(t, err)
		assert.Equal(t, "name, email, phone, year", policy.Describe())

		field, missing := policy.Missing(&MemberInput{Name: "A", Email: "a@example.com", Year: "2"})
		assert.True(t, missing)
		assert.Equal(t, FieldPhone, field)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := NewLeaderPolicy([]string{"name", "shoe_size"})
		assert.Error(t, err)
	})

	t.Run("nil leader reports name", func(t *testing.T) {
		field, missing := DefaultLeaderPolicy().Missing(nil)
		assert.True(t, missing)
		assert.Equal(t, FieldName, field)
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		_, missing := DefaultLeaderPolicy().Missing(&MemberInput{
			Name: "A", Email: "a@example.com", Phone: "1", Year: " ", Class: "B",
		})
		assert.True(t, missing)
	})
}

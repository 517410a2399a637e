package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{name: "configured cost", cost: bcrypt.MinCost, wantCost: bcrypt.MinCost},
		{name: "below range falls back", cost: 1, wantCost: bcrypt.DefaultCost},
		{name: "above range falls back", cost: 99, wantCost: bcrypt.DefaultCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := HashPassword("secret1", tt.cost)
			require.NoError(t, err)
			assert.NotEqual(t, "secret1", h)

			got, err := bcrypt.Cost([]byte(h))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, got)
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPassword(t *testing.T) {
	h, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct horse", h))
	assert.False(t, CheckPassword("wrong horse", h))
	assert.False(t, CheckPassword("correct horse", "not-a-hash"))
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("super-secret"), Issuer: "todo-api", TTL: ttl}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer(time.Hour)

	tok, err := j.Issue("user-123", "ann@example.com", RoleUser)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", c.UID)
	assert.Equal(t, "user-123", c.Subject)
	assert.Equal(t, "ann@example.com", c.Email)
	assert.Equal(t, RoleUser, c.Role)
	assert.Equal(t, "todo-api", c.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.ExpiresAt.Time, 5*time.Second)
}

func TestParse_Rejects(t *testing.T) {
	good := newJWTer(time.Hour)
	valid, err := good.Issue("u1", "u1@example.com", RoleUser)
	require.NoError(t, err)

	expired, err := newJWTer(-time.Minute).Issue("u1", "u1@example.com", RoleUser)
	require.NoError(t, err)

	otherIssuer, err := (&JWTer{Secret: good.Secret, Issuer: "someone-else", TTL: time.Hour}).Issue("u1", "", RoleUser)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		parser *JWTer
		token  string
		isErr  error
	}{
		{name: "expired", parser: good, token: expired, isErr: jwt.ErrTokenExpired},
		{name: "wrong secret", parser: &JWTer{Secret: []byte("wrong"), Issuer: "todo-api"}, token: valid, isErr: jwt.ErrTokenSignatureInvalid},
		{name: "wrong issuer", parser: good, token: otherIssuer, isErr: jwt.ErrTokenInvalidIssuer},
		{name: "none alg", parser: good, token: noneAlg},
		{name: "malformed", parser: good, token: "not.a.jwt", isErr: jwt.ErrTokenMalformed},
		{name: "empty", parser: good, token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.parser.Parse(tt.token)
			require.Error(t, err)
			assert.Nil(t, c)
			if tt.isErr != nil {
				assert.True(t, errors.Is(err, tt.isErr), "got %v", err)
			}
		})
	}
}

func TestIssue_EmptySecret(t *testing.T) {
	_, err := (&JWTer{TTL: time.Hour}).Issue("u1", "", RoleUser)
	assert.Error(t, err)
}

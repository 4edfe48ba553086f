package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	ts := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "moviehub-test",
		Duration: time.Hour,
	}

	token, exp, err := ts.Sign(RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, "moviehub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("secret-a"), Issuer: "x", Duration: time.Hour}
	token, _, err := ts.Sign(RoleAdmin)
	require.NoError(t, err)

	other := TokenService{Secret: []byte("secret-b"), Issuer: "x", Duration: time.Hour}
	_, err = other.Parse(token)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("secret"), Issuer: "x", Duration: -time.Minute}
	token, _, err := ts.Sign(RoleAdmin)
	require.NoError(t, err)

	_, err = ts.Parse(token)
	require.Error(t, err)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleAdmin, "ledger-recon", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, "ledger-recon", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleAuditor, "otro-emisor", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", "", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse(secret, "ledger-recon", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := jwt.Generate(secret, "user-1", "company-1", jwt.RoleAuditor, "", -1)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, "", expired)
	assert.Error(t, err, "token expirado")

	noCompany, err := jwt.Generate(secret, "user-1", "", jwt.RoleAuditor, "", 5)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, "", noCompany)
	assert.ErrorIs(t, err, jwt.ErrMissingCompany)

	_, err = jwt.Parse("", "", tok)
	assert.Error(t, err)
}

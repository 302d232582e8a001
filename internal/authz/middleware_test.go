package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/pkg/contextkeys"
)

func requestWithPrincipal(categories, positions, roles []string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/members", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if categories != nil || positions != nil || roles != nil {
		p := principalWith(categories, positions, roles)
		ctx := context.WithValue(req.Context(), contextkeys.PrincipalKey, p)
		c.SetRequest(req.WithContext(ctx))
	}
	return c, rec
}

func TestRequirePolicyDeniesCaloiroAdminWrites(t *testing.T) {
	handler := RequirePolicy(PolicyMemberManagementWrite, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := requestWithPrincipal([]string{"Caloiro"}, nil, []string{"Admin"})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePolicyAllowsFullAdminWrites(t *testing.T) {
	handler := RequirePolicy(PolicyMemberManagementWrite, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := requestWithPrincipal([]string{"Tuno"}, nil, []string{"Admin"})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAnyPolicyAdmitsEitherBody(t *testing.T) {
	handler := RequireAnyPolicy(zap.NewNop(), PolicyFinance, PolicyConselhoFiscal)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// a fiscal-council seat reads the ledger without any treasurer position
	c, rec := requestWithPrincipal([]string{"Veterano"}, []string{"PresidenteConselhoFiscal"}, []string{"Member"})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = requestWithPrincipal([]string{"Tuno"}, nil, []string{"Member"})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePolicyRejectsMissingPrincipal(t *testing.T) {
	handler := RequirePolicy(PolicyMemberManagementWrite, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := requestWithPrincipal(nil, nil, nil)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

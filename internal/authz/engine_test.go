package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rtub-system/internal/claims"
)

func principalWith(categories []string, positions []string, roles []string) *claims.Principal {
	return claims.Project(&claims.MemberRecord{
		ID:         1,
		Roles:      roles,
		Categories: categories,
		Positions:  positions,
	})
}

func TestAtLeastHighestCategoryWins(t *testing.T) {
	// A lower category held alongside never blocks the higher one.
	p := principalWith([]string{"Leitao", "Tuno"}, nil, nil)
	assert.True(t, AtLeast(claims.CategoryCaloiro)(p))
	assert.True(t, AtLeast(claims.CategoryTuno)(p))
	assert.False(t, AtLeast(claims.CategoryVeterano)(p))
}

func TestAtLeastIgnoresUnrankedFlags(t *testing.T) {
	p := principalWith([]string{"TunoHonorario", "Fundador"}, nil, nil)
	assert.False(t, AtLeast(claims.CategoryLeitao)(p))
}

func TestAtLeastUnknownThresholdDenies(t *testing.T) {
	p := principalWith([]string{"Tunossauro"}, nil, nil)
	assert.False(t, AtLeast(claims.Category("Maestro"))(p))
}

func TestIsOnlyLeitao(t *testing.T) {
	assert.True(t, IsOnlyLeitao(principalWith([]string{"Leitao"}, nil, nil)))
	// Promotion keeps the Leitao claim around; the member is no longer
	// "only" a Leitao.
	assert.False(t, IsOnlyLeitao(principalWith([]string{"Leitao", "Caloiro"}, nil, nil)))
	assert.False(t, IsOnlyLeitao(principalWith([]string{"Tuno"}, nil, nil)))
	assert.False(t, IsOnlyLeitao(principalWith(nil, nil, nil)))
}

func TestNotOnlyLeitaoAdmitsNoCategory(t *testing.T) {
	assert.True(t, NotOnlyLeitao(principalWith(nil, nil, nil)))
	assert.True(t, NotOnlyLeitao(principalWith([]string{"TunoHonorario"}, nil, nil)))
	assert.False(t, NotOnlyLeitao(principalWith([]string{"Leitao"}, nil, nil)))
}

func TestCaloiroAdminMatrix(t *testing.T) {
	cases := []struct {
		name       string
		categories []string
		roles      []string
		want       bool
	}{
		{"caloiro admin", []string{"Caloiro"}, []string{"Admin"}, true},
		{"owner supersedes", []string{"Caloiro"}, []string{"Admin", "Owner"}, false},
		{"tuno admin", []string{"Tuno"}, []string{"Admin"}, false},
		{"caloiro without admin", []string{"Caloiro"}, []string{"Member"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := principalWith(tc.categories, nil, tc.roles)
			assert.Equal(t, tc.want, CaloiroAdmin(p))
		})
	}
}

func TestHasAnyPosition(t *testing.T) {
	p := principalWith(nil, []string{"Tesoureiro"}, nil)
	assert.True(t, HasAnyPosition(claims.PositionTesoureiro, claims.PositionViceTesoureiro)(p))
	assert.False(t, HasAnyPosition(claims.PositionMagister)(p))
}

func TestComposites(t *testing.T) {
	adminTuno := All(HasRole(claims.RoleAdmin), AtLeast(claims.CategoryTuno))
	assert.True(t, adminTuno(principalWith([]string{"Tuno"}, nil, []string{"Admin"})))
	// Role and category are independent axes; one never substitutes for
	// the other.
	assert.False(t, adminTuno(principalWith([]string{"Tuno"}, nil, []string{"Member"})))
	assert.False(t, adminTuno(principalWith([]string{"Caloiro"}, nil, []string{"Admin"})))
}

func TestEvaluateUnknownPolicyDenies(t *testing.T) {
	p := principalWith([]string{"Tunossauro"}, nil, []string{"Owner"})
	assert.False(t, Evaluate("no-such-policy", p))
}

func TestEvaluateCatalogPolicies(t *testing.T) {
	magister := principalWith([]string{"Tuno"}, []string{"Magister"}, []string{"Member"})
	assert.True(t, Evaluate(PolicyMagistratura, magister))
	assert.True(t, Evaluate(PolicyMemberManagement, magister))
	assert.False(t, Evaluate(PolicyFinance, magister))
	assert.False(t, Evaluate(PolicyAdmin, magister))

	tesoureiro := principalWith([]string{"Veterano"}, []string{"Tesoureiro"}, []string{"Member"})
	assert.True(t, Evaluate(PolicyTesouraria, tesoureiro))
	assert.True(t, Evaluate(PolicyFinance, tesoureiro))
	assert.True(t, Evaluate(PolicyAtLeastVeterano, tesoureiro))
}

func TestNot(t *testing.T) {
	p := principalWith([]string{"Caloiro"}, nil, []string{"Admin"})
	assert.False(t, Not(CaloiroAdmin)(p))
	assert.True(t, Not(IsOnlyLeitao)(p))
}

func TestMemberManagementWriteExcludesCaloiroAdmin(t *testing.T) {
	// A Caloiro holding Admin reads the roster but cannot mutate it.
	caloiroAdmin := principalWith([]string{"Caloiro"}, nil, []string{"Admin"})
	assert.True(t, Evaluate(PolicyMemberManagement, caloiroAdmin))
	assert.False(t, Evaluate(PolicyMemberManagementWrite, caloiroAdmin))

	// Admin with a higher category keeps full access.
	tunoAdmin := principalWith([]string{"Tuno"}, nil, []string{"Admin"})
	assert.True(t, Evaluate(PolicyMemberManagementWrite, tunoAdmin))

	// Owner supersedes the restriction even at Caloiro.
	caloiroOwner := principalWith([]string{"Caloiro"}, nil, []string{"Admin", "Owner"})
	assert.True(t, Evaluate(PolicyMemberManagementWrite, caloiroOwner))

	// A Magister without the Admin role is unaffected.
	magister := principalWith([]string{"Tuno"}, []string{"Magister"}, []string{"Member"})
	assert.True(t, Evaluate(PolicyMemberManagementWrite, magister))
}

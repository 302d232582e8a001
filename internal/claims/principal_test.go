package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimSetDeduplicatesCaseInsensitively(t *testing.T) {
	set := make(ClaimSet)
	set.Add(ClaimTypeCategory, "Tuno")
	set.Add(ClaimTypeCategory, "tuno")
	set.Add(ClaimTypeCategory, "TUNO")

	assert.Len(t, set.Values(ClaimTypeCategory), 1)
	assert.True(t, set.Has(ClaimTypeCategory, "tUnO"))
}

func TestProjectBuildsFullClaimSet(t *testing.T) {
	member := &MemberRecord{
		ID:          7,
		Username:    "Zé",
		Email:       "ze@rtub.local",
		Roles:       []string{RoleMember},
		Categories:  []string{"Leitao", "Caloiro", "Tuno"},
		Positions:   []string{"Ensaiador"},
		YearsAsTuno: 3,
		IsFounder:   true,
	}

	p := Project(member)
	require.NotNil(t, p)

	assert.ElementsMatch(t, []string{"Leitao", "Caloiro", "Tuno"}, p.Categories())
	assert.ElementsMatch(t, []string{"Ensaiador"}, p.Positions())
	assert.Equal(t, []string{"Tuno"}, p.Claims.Values(ClaimTypePrimaryCategory))
	assert.Equal(t, []string{"3"}, p.Claims.Values(ClaimTypeYearsAsTuno))
	assert.Equal(t, []string{"true"}, p.Claims.Values(ClaimTypeIsFounder))
}

func TestProjectNeverAccumulatesAcrossRebuilds(t *testing.T) {
	member := &MemberRecord{ID: 1, Categories: []string{"Leitao"}}
	first := Project(member)
	assert.Len(t, first.Categories(), 1)

	// The member got promoted and the old category was revoked; a rebuild
	// must reflect only the current sets.
	member.Categories = []string{"Caloiro"}
	second := Project(member)
	assert.Equal(t, []string{"Caloiro"}, second.Categories())
	assert.False(t, second.Claims.Has(ClaimTypeCategory, "Leitao"))
}

func TestProjectPrimaryCategoryFallsBackToFlag(t *testing.T) {
	p := Project(&MemberRecord{ID: 2, Categories: []string{"TunoHonorario"}})
	assert.Equal(t, []string{"TunoHonorario"}, p.Claims.Values(ClaimTypePrimaryCategory))
}

func TestHighestCategoryLevel(t *testing.T) {
	p := Project(&MemberRecord{ID: 3, Categories: []string{"Leitao", "Tuno"}})
	assert.Equal(t, GetLevel("Tuno"), p.HighestCategoryLevel())

	empty := Project(&MemberRecord{ID: 4})
	assert.Equal(t, -1, empty.HighestCategoryLevel())
}

func TestPrincipalNilSafety(t *testing.T) {
	var p *Principal
	assert.False(t, p.IsAuthenticated())
	assert.False(t, p.HasRole(RoleAdmin))
	assert.False(t, p.HasCategory(CategoryTuno))
	assert.Equal(t, -1, p.HighestCategoryLevel())
}

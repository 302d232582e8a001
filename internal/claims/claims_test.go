package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLevelOrdersHierarchy(t *testing.T) {
	previous := -1
	for _, category := range Hierarchy {
		level := GetLevel(string(category))
		assert.Greater(t, level, previous, "level of %s must exceed its predecessor", category)
		previous = level
	}
}

func TestGetLevelIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, GetLevel("Tuno"), GetLevel("tuno"))
	assert.Equal(t, GetLevel("Tuno"), GetLevel("TUNO"))
	assert.Equal(t, GetLevel("Veterano"), GetLevel("vEtErAnO"))
}

func TestGetLevelUnknown(t *testing.T) {
	assert.Equal(t, -1, GetLevel(""))
	assert.Equal(t, -1, GetLevel("Maestro"))
	// Standing flags are valid categories but carry no rank.
	assert.Equal(t, -1, GetLevel(string(CategoryTunoHonorario)))
	assert.Equal(t, -1, GetLevel(string(CategoryFundador)))
}

func TestIsValidCategory(t *testing.T) {
	for _, category := range Hierarchy {
		assert.True(t, IsValidCategory(string(category)))
	}
	assert.True(t, IsValidCategory("tunohonorario"))
	assert.True(t, IsValidCategory("Fundador"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Conductor"))
}

func TestIsValidPosition(t *testing.T) {
	assert.True(t, IsValidPosition("Magister"))
	assert.True(t, IsValidPosition("ensaiador"))
	assert.False(t, IsValidPosition("Roadie"))
	assert.False(t, IsValidPosition(""))
}

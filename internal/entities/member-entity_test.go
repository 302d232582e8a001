package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearsAsTuno(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	noTuno := &Member{}
	assert.Equal(t, 0, noTuno.YearsAsTuno(now))

	since := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	m := &Member{TunoSince: &since}
	// Anniversary has not come round yet this year.
	assert.Equal(t, 5, m.YearsAsTuno(now))

	past := time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC)
	m = &Member{TunoSince: &past}
	assert.Equal(t, 6, m.YearsAsTuno(now))

	future := now.AddDate(1, 0, 0)
	m = &Member{TunoSince: &future}
	assert.Equal(t, 0, m.YearsAsTuno(now))
}

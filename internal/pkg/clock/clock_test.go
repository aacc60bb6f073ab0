package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_Today_OrganizationalTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is already past midnight in Kolkata (+05:30).
	clk := NewFixed(time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, "2024-01-16", clk.Today())
	assert.Equal(t, time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), clk.Now())
}

func TestFixed_Advance_MovesInstant(t *testing.T) {
	clk := NewFixed(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), time.UTC)

	clk.Advance(90 * time.Minute)

	assert.Equal(t, time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC), clk.Now())
	assert.Equal(t, "2024-01-15", clk.Today())
}

func TestClock_New_BadTimezoneFallsBackToUTC(t *testing.T) {
	clk := New("Not/AZone")
	assert.Equal(t, time.UTC, clk.Location())
}

func TestClock_Now_UTC(t *testing.T) {
	clk := New("Asia/Kolkata")
	assert.Equal(t, time.UTC, clk.Now().Location())
}

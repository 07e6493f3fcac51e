package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaincalendar "staysia/internal/domain/calendar"
	domainpricing "staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/money"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "staysia:details:83", detailsKey(83))
	assert.Equal(t, "staysia:calendar:abc", sessionKey("abc"))
}

func TestSessionSurvivesJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	entries := []domainpricing.Entry{{
		Date:   time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC),
		Price:  1_000_000,
		Status: domainpricing.StatusPeakSeason,
	}}
	session := domaincalendar.NewSession("s1", 83, "Ubud Villa", 800_000, entries, money.DefaultPreferences(), now)
	session.SelectDate(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC), now)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	decoded, err := decodeSession(raw)
	require.NoError(t, err)

	assert.Equal(t, session.Selection.CheckIn, decoded.Selection.CheckIn)
	assert.Equal(t, domaincalendar.PhaseHasCheckIn, decoded.Selection.Phase())
	assert.Equal(t, int64(1_000_000), decoded.Index().Lookup(entries[0].Date).Price)
}

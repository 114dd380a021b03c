package knowledge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank(n int) ([]uint, map[uint]ItemParams) {
	bank := make([]uint, n)
	params := make(map[uint]ItemParams, n)
	for i := 0; i < n; i++ {
		id := uint(i + 1)
		bank[i] = id
		// Spread difficulties so item selection has something to choose.
		params[id] = ItemParams{
			Difficulty:     -2 + 4*float64(i)/float64(n-1),
			Discrimination: 1.2,
			Guessing:       0.2,
		}
	}
	return bank, params
}

func TestNextItemNeverRepeats(t *testing.T) {
	bank, params := testBank(20)
	session := NewCATSession("s1", 1, bank)

	seen := make(map[uint]bool)
	for i := 0; i < 15; i++ {
		id, err := session.NextItem(params)
		require.NoError(t, err)
		assert.False(t, seen[id], "item %d administered twice", id)
		seen[id] = true

		require.NoError(t, session.Submit(id, i%2 == 0, params))
		if session.Terminated {
			break
		}
	}
}

func TestSubmitRejectsUnknownItem(t *testing.T) {
	bank, params := testBank(12)
	session := NewCATSession("s2", 1, bank)

	err := session.Submit(999, true, params)
	assert.ErrorIs(t, err, ErrItemNotInBank)
}

func TestSessionTerminatesWithinMaxItems(t *testing.T) {
	bank, params := testBank(60)
	session := NewCATSession("s3", 1, bank)

	for !session.Terminated {
		id, err := session.NextItem(params)
		require.NoError(t, err)
		require.NoError(t, session.Submit(id, true, params))
		require.LessOrEqual(t, len(session.Responses), CATMaxItems)
	}

	assert.GreaterOrEqual(t, len(session.Responses), CATMinItems)
	assert.LessOrEqual(t, session.SE, CATTargetSE)
}

func TestTerminatedSessionRejectsFurtherWork(t *testing.T) {
	bank, params := testBank(12)
	session := NewCATSession("s4", 1, bank)
	session.Terminated = true

	_, err := session.NextItem(params)
	assert.ErrorIs(t, err, ErrSessionTerminated)

	err = session.Submit(bank[0], true, params)
	assert.ErrorIs(t, err, ErrSessionTerminated)
}

func TestBankExhaustionTerminates(t *testing.T) {
	bank, params := testBank(12)
	session := NewCATSession("s5", 1, bank)

	for i := 0; i < len(bank); i++ {
		id, err := session.NextItem(params)
		require.NoError(t, err)
		require.NoError(t, session.Submit(id, false, params))
		if session.Terminated {
			break
		}
	}
	assert.True(t, session.Terminated)
}

func TestConfidenceIntervalBracketsAbility(t *testing.T) {
	bank, params := testBank(20)
	session := NewCATSession("s6", 1, bank)

	for i := 0; i < CATMinItems; i++ {
		id, err := session.NextItem(params)
		require.NoError(t, err)
		require.NoError(t, session.Submit(id, true, params))
	}

	low, high := session.ConfidenceInterval()
	assert.Less(t, low, session.Ability)
	assert.Greater(t, high, session.Ability)
	assert.InDelta(t, 2*1.96*session.SE, high-low, 1e-9)
}

func TestSessionSurvivesJSONRoundTrip(t *testing.T) {
	bank, params := testBank(12)
	session := NewCATSession("s7", 42, bank)

	id, err := session.NextItem(params)
	require.NoError(t, err)
	require.NoError(t, session.Submit(id, true, params))

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var restored CATSession
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, session.ID, restored.ID)
	assert.Equal(t, session.UserID, restored.UserID)
	assert.Equal(t, session.Ability, restored.Ability)
	assert.Equal(t, session.Responses, restored.Responses)

	// The restored session keeps working.
	next, err := restored.NextItem(params)
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
}

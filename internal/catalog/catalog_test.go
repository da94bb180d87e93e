package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMumbai_Entries(t *testing.T) {
	locs := Mumbai()

	require.Len(t, locs, 30)
	assert.Equal(t, "Andheri West", locs[0].Name)
	assert.Equal(t, "Worli", locs[len(locs)-1].Name)

	seen := make(map[string]bool, len(locs))
	for _, loc := range locs {
		assert.False(t, seen[loc.Name], "duplicate %s", loc.Name)
		seen[loc.Name] = true
		assert.InDelta(t, 19.0, loc.Latitude, 0.5)
		assert.InDelta(t, 72.9, loc.Longitude, 0.5)
		assert.GreaterOrEqual(t, loc.BaseScore, 0)
		assert.LessOrEqual(t, loc.BaseScore, 100)
	}
}

func TestMumbai_ReturnsCopy(t *testing.T) {
	locs := Mumbai()
	locs[0].Name = "changed"

	assert.Equal(t, "Andheri West", Mumbai()[0].Name)
}

func TestBaseScore(t *testing.T) {
	assert.Equal(t, 85, BaseScore("Colaba"))
	assert.Equal(t, 88, BaseScore(" marine drive "))
	assert.Equal(t, DefaultBaseScore, BaseScore("Atlantis"))
}

package courts

import (
	"testing"

	"campusmind/internal/sports"

	"github.com/stretchr/testify/assert"
)

func TestGroupKeyFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Court A-1", "Court A"},
		{"Court A-2", "Court A"},
		{"Court A", "Court A"},
		{"Court D-2", "Court D"},
		{"Table 1", "Table 1"},
		{"Table 2", "Table 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupKeyFor(tt.name), "group key of %q", tt.name)
	}
}

func TestGroupKeys(t *testing.T) {
	courts := []Court{
		{Name: "Court A-1", GroupKey: "Court A"},
		{Name: "Court A-2", GroupKey: "Court A"},
		{Name: "Court B-1", GroupKey: "Court B"},
	}
	assert.Equal(t, []string{"Court A", "Court B"}, GroupKeys(courts))
	assert.Empty(t, GroupKeys(nil))
}

func TestSportsSharingSpace(t *testing.T) {
	court := Court{
		Name:       "Court A-1",
		GroupKey:   "Court A",
		Sport:      &sports.Sport{Name: "Badminton"},
		SharedWith: []string{"Basketball", "Pickleball"},
	}
	assert.Equal(t, []string{"Badminton", "Basketball", "Pickleball"}, SportsSharingSpace(&court))

	solo := Court{Name: "Table 1", GroupKey: "Table 1", Sport: &sports.Sport{Name: "Table Tennis"}}
	assert.Equal(t, []string{"Table Tennis"}, SportsSharingSpace(&solo))
}

func TestBlocks(t *testing.T) {
	wholeCourt := &Court{Name: "Court A", GroupKey: "Court A"}
	subCourt1 := &Court{Name: "Court A-1", GroupKey: "Court A"}
	subCourt2 := &Court{Name: "Court A-2", GroupKey: "Court A"}

	t.Run("whole court blocked by any reservation in its group", func(t *testing.T) {
		assert.True(t, Blocks(wholeCourt, "Court A-1", "Court A"))
		assert.True(t, Blocks(wholeCourt, "Court A-2", "Court A"))
		assert.True(t, Blocks(wholeCourt, "Court A", "Court A"))
	})

	t.Run("sub-court blocked by itself and the whole court only", func(t *testing.T) {
		assert.True(t, Blocks(subCourt1, "Court A-1", "Court A"))
		assert.True(t, Blocks(subCourt1, "Court A", "Court A"))
		assert.False(t, Blocks(subCourt1, "Court A-2", "Court A"), "sibling sub-court must not block")
		assert.True(t, Blocks(subCourt2, "Court A-2", "Court A"))
		assert.False(t, Blocks(subCourt2, "Court A-1", "Court A"))
	})

	t.Run("different physical group never blocks", func(t *testing.T) {
		assert.False(t, Blocks(wholeCourt, "Court B-1", "Court B"))
		assert.False(t, Blocks(subCourt1, "Court B-1", "Court B"))
	})
}

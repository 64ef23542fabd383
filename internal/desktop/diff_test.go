package desktop

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIDs(n int) []ID {
	ids := make([]ID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func snap(current ID, ids ...ID) Snapshot {
	s := Snapshot{Current: current}
	for i, id := range ids {
		s.Desktops = append(s.Desktops, Desktop{ID: id, Name: "d", Index: i})
	}
	return s
}

// replay applies events to the ids of prev the way a consumer would.
func replay(t *testing.T, prev Snapshot, events []Event) []ID {
	t.Helper()
	var list []ID
	for _, d := range prev.Desktops {
		list = append(list, d.ID)
	}
	for _, ev := range events {
		switch ev.Kind {
		case Destroyed:
			for i, id := range list {
				if id == ev.Desktop.ID {
					list = append(list[:i], list[i+1:]...)
					break
				}
			}
		case Created:
			at := ev.NewIndex
			require.LessOrEqual(t, at, len(list))
			list = append(list, ID{})
			copy(list[at+1:], list[at:])
			list[at] = ev.Desktop.ID
		case Moved:
			require.Less(t, ev.OldIndex, len(list))
			id := list[ev.OldIndex]
			require.Equal(t, ev.Desktop.ID, id)
			list = append(list[:ev.OldIndex], list[ev.OldIndex+1:]...)
			list = append(list, ID{})
			copy(list[ev.NewIndex+1:], list[ev.NewIndex:])
			list[ev.NewIndex] = id
		}
	}
	return list
}

func idsOf(s Snapshot) []ID {
	var out []ID
	for _, d := range s.Desktops {
		out = append(out, d.ID)
	}
	return out
}

func kinds(events []Event) []EventKind {
	var out []EventKind
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestDiffNoChange(t *testing.T) {
	ids := newIDs(3)
	s := snap(ids[0], ids...)
	assert.Empty(t, Diff(s, s))
}

func TestDiffReplaysToNextOrder(t *testing.T) {
	a, b, c, d, e := newIDs(5)[0], uuid.New(), uuid.New(), uuid.New(), uuid.New()
	tests := []struct {
		name string
		prev Snapshot
		next Snapshot
	}{
		{"create at end", snap(a, a, b), snap(a, a, b, c)},
		{"create in middle", snap(a, a, b), snap(a, a, c, b)},
		{"destroy", snap(a, a, b, c), snap(a, a, c)},
		{"swap", snap(a, a, b), snap(a, b, a)},
		{"rotate", snap(a, a, b, c, d), snap(a, d, a, b, c)},
		{"reverse", snap(a, a, b, c, d), snap(a, d, c, b, a)},
		{"mixed", snap(a, a, b, c, d), snap(a, e, d, a)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Diff(tt.prev, tt.next)
			assert.Equal(t, idsOf(tt.next), replay(t, tt.prev, events))
		})
	}
}

func TestDiffEventOrdering(t *testing.T) {
	ids := newIDs(3)
	a, b, c := ids[0], ids[1], ids[2]
	prev := snap(a, a, b)
	next := snap(c, a, c)
	next.Desktops[0].Name = "renamed"

	events := Diff(prev, next)
	assert.Equal(t, []EventKind{Destroyed, Created, Renamed, Switched}, kinds(events))
	last := events[len(events)-1]
	assert.Equal(t, a, last.Old)
	assert.Equal(t, c, last.New)
}

func TestDiffSwitchesBeforeDestroyingCurrent(t *testing.T) {
	ids := newIDs(2)
	a, b := ids[0], ids[1]

	events := Diff(snap(b, a, b), snap(a, a))
	require.Equal(t, []EventKind{Switched, Destroyed}, kinds(events))
	assert.Equal(t, b, events[0].Old)
	assert.Equal(t, a, events[0].New)
	assert.Equal(t, b, events[1].Desktop.ID)
}

func TestDiffRenameAndWallpaper(t *testing.T) {
	a := uuid.New()
	prev := snap(a, a)
	next := snap(a, a)
	next.Desktops[0].Name = "Work"
	next.Desktops[0].WallpaperPath = `C:\wall.jpg`

	events := Diff(prev, next)
	require.Equal(t, []EventKind{Renamed, WallpaperChanged}, kinds(events))
	assert.Equal(t, "Work", events[0].Name)
	assert.Equal(t, `C:\wall.jpg`, events[1].WallpaperPath)
}

func TestDiffIgnoresEmptyCurrent(t *testing.T) {
	a := uuid.New()
	assert.Empty(t, Diff(snap(a, a), snap(ID{}, a)))
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "switched", Switched.String())
	assert.Equal(t, "wallpaper-changed", WallpaperChanged.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}

package desktop

// Snapshot is the full desktop state at one point in time. Desktops are in
// display order.
type Snapshot struct {
	Desktops []Desktop
	Current  ID
}

// Snapshotter captures the current desktop state.
type Snapshotter interface {
	Snapshot() (Snapshot, error)
}

// Find returns the desktop with id.
func (s Snapshot) Find(id ID) (Desktop, bool) {
	for _, d := range s.Desktops {
		if d.ID == id {
			return d, true
		}
	}
	return Desktop{}, false
}

// Diff returns the events that turn prev into next.
//
// Replaying the events in order against prev's list yields next's list:
// destroys first, then creates at their new index in ascending order, then
// moves, then renames and wallpaper changes. The switch is reported last,
// except when the previous current desktop is being destroyed and the new
// current one already existed. In that case it is reported first so the
// departing desktop is still known when the switch is handled.
func Diff(prev, next Snapshot) []Event {
	var events []Event

	nextIDs := make(map[ID]bool, len(next.Desktops))
	for _, d := range next.Desktops {
		nextIDs[d.ID] = true
	}
	prevIDs := make(map[ID]bool, len(prev.Desktops))
	for _, d := range prev.Desktops {
		prevIDs[d.ID] = true
	}

	switched := prev.Current != next.Current && next.Current != (ID{})
	switchEvent := Event{Kind: Switched, Old: prev.Current, New: next.Current}
	if nd, ok := next.Find(next.Current); ok {
		switchEvent.Desktop = nd
	}
	switchFirst := switched && !nextIDs[prev.Current] && prevIDs[next.Current]
	if switchFirst {
		events = append(events, switchEvent)
	}

	sim := make([]Desktop, 0, len(prev.Desktops))
	for _, d := range prev.Desktops {
		if !nextIDs[d.ID] {
			events = append(events, Event{Kind: Destroyed, Desktop: d, OldIndex: d.Index})
			continue
		}
		sim = append(sim, d)
	}

	for i, d := range next.Desktops {
		if prevIDs[d.ID] {
			continue
		}
		at := i
		if at > len(sim) {
			at = len(sim)
		}
		sim = insertAt(sim, at, d)
		events = append(events, Event{Kind: Created, Desktop: d, NewIndex: at})
	}

	for i, d := range next.Desktops {
		if i >= len(sim) || sim[i].ID == d.ID {
			continue
		}
		for j := i + 1; j < len(sim); j++ {
			if sim[j].ID != d.ID {
				continue
			}
			moved := sim[j]
			sim = append(sim[:j], sim[j+1:]...)
			sim = insertAt(sim, i, moved)
			events = append(events, Event{Kind: Moved, Desktop: d, OldIndex: j, NewIndex: i})
			break
		}
	}

	for _, d := range next.Desktops {
		old, ok := prev.Find(d.ID)
		if !ok {
			continue
		}
		if old.Name != d.Name {
			events = append(events, Event{Kind: Renamed, Desktop: d, Name: d.Name})
		}
		if old.WallpaperPath != d.WallpaperPath {
			events = append(events, Event{Kind: WallpaperChanged, Desktop: d, WallpaperPath: d.WallpaperPath})
		}
	}

	if switched && !switchFirst {
		events = append(events, switchEvent)
	}
	return events
}

func insertAt(list []Desktop, i int, d Desktop) []Desktop {
	list = append(list, Desktop{})
	copy(list[i+1:], list[i:])
	list[i] = d
	return list
}

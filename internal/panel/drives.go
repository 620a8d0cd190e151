package panel

import (
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// DriveHandle addresses a built drive affordance by its position in the
// previous drive list.
type DriveHandle int

// PlacedDrive is a drive affordance to build at Position.
type PlacedDrive struct {
	Drive    fsutil.Drive
	Position int
}

// DriveDiff is the set of presentation changes for one drive refresh.
// Active indexes Add, -1 when no drive is active.
type DriveDiff struct {
	Remove []DriveHandle
	Add    []PlacedDrive
	Active int
}

// SyncDrives computes the replacement of prev by next. Drive affordances
// carry no identity across refreshes: every previous one is torn down and
// every new one is built in enumerator order. An out-of-range active index
// means no drive is active.
func SyncDrives(prev, next []fsutil.Drive, active int) DriveDiff {
	diff := DriveDiff{
		Remove: make([]DriveHandle, len(prev)),
		Add:    make([]PlacedDrive, len(next)),
		Active: -1,
	}
	for i := range prev {
		diff.Remove[i] = DriveHandle(i)
	}
	for i, d := range next {
		diff.Add[i] = PlacedDrive{Drive: d, Position: i}
	}
	if active >= 0 && active < len(next) {
		diff.Active = active
	}
	return diff
}

// DriveBar is the built drive affordance list of one panel.
type DriveBar struct {
	drives []fsutil.Drive
	active int
}

// NewDriveBar returns an empty bar with no active drive.
func NewDriveBar() *DriveBar {
	return &DriveBar{active: -1}
}

// Update replaces the bar contents with next and returns the applied diff.
func (b *DriveBar) Update(next []fsutil.Drive, active int) DriveDiff {
	diff := SyncDrives(b.drives, next, active)
	b.Apply(diff)
	return diff
}

// Apply tears down the removed affordances and builds the added ones.
func (b *DriveBar) Apply(diff DriveDiff) {
	removed := make(map[DriveHandle]struct{}, len(diff.Remove))
	for _, h := range diff.Remove {
		checkIndex("drive handle", int(h), len(b.drives))
		removed[h] = struct{}{}
	}

	kept := make([]fsutil.Drive, 0, len(b.drives)-len(removed)+len(diff.Add))
	for i, d := range b.drives {
		if _, gone := removed[DriveHandle(i)]; !gone {
			kept = append(kept, d)
		}
	}
	for _, p := range diff.Add {
		pos := min(max(p.Position, 0), len(kept))
		kept = append(kept, fsutil.Drive{})
		copy(kept[pos+1:], kept[pos:])
		kept[pos] = p.Drive
	}

	b.drives = kept
	b.active = -1
	if diff.Active >= 0 && diff.Active < len(kept) {
		b.active = diff.Active
	}
}

// Drives returns the built drives in display order.
func (b *DriveBar) Drives() []fsutil.Drive {
	return b.drives
}

// Len returns the number of built drives.
func (b *DriveBar) Len() int {
	return len(b.drives)
}

// Active returns the index of the active drive, -1 when none.
func (b *DriveBar) Active() int {
	return b.active
}

// SetActive marks drive i active; out of range clears it.
func (b *DriveBar) SetActive(i int) {
	if i < 0 || i >= len(b.drives) {
		i = -1
	}
	b.active = i
}

// At returns drive i.
func (b *DriveBar) At(i int) (fsutil.Drive, bool) {
	if i < 0 || i >= len(b.drives) {
		return fsutil.Drive{}, false
	}
	return b.drives[i], true
}

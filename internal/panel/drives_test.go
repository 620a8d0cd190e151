package panel

import (
	"reflect"
	"testing"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

func drive(name string) fsutil.Drive {
	return fsutil.Drive{Name: name, Path: "/" + name}
}

func TestSyncDrivesReplacesEverything(t *testing.T) {
	a, b, c := drive("A"), drive("B"), drive("C")

	diff := SyncDrives([]fsutil.Drive{a, b}, []fsutil.Drive{b, c}, 1)

	if !reflect.DeepEqual(diff.Remove, []DriveHandle{0, 1}) {
		t.Fatalf("expected both old affordances removed, got %v", diff.Remove)
	}
	wantAdd := []PlacedDrive{{Drive: b, Position: 0}, {Drive: c, Position: 1}}
	if !reflect.DeepEqual(diff.Add, wantAdd) {
		t.Fatalf("unexpected adds %+v", diff.Add)
	}
	if diff.Active != 1 || diff.Add[diff.Active].Drive.Name != "C" {
		t.Fatalf("expected C active, got %d", diff.Active)
	}
}

func TestSyncDrivesActiveOutOfRange(t *testing.T) {
	for _, active := range []int{-1, 2, 99} {
		diff := SyncDrives(nil, []fsutil.Drive{drive("A"), drive("B")}, active)
		if diff.Active != -1 {
			t.Fatalf("active %d should mean none, got %d", active, diff.Active)
		}
	}
}

func TestDriveBarUpdate(t *testing.T) {
	bar := NewDriveBar()
	bar.Update([]fsutil.Drive{drive("A"), drive("B")}, 0)
	if bar.Len() != 2 || bar.Active() != 0 {
		t.Fatalf("unexpected bar %+v", bar.Drives())
	}

	diff := bar.Update([]fsutil.Drive{drive("B"), drive("C")}, 1)
	if len(diff.Remove) != 2 {
		t.Fatalf("expected 2 removals, got %v", diff.Remove)
	}
	got := []string{bar.Drives()[0].Name, bar.Drives()[1].Name}
	if !reflect.DeepEqual(got, []string{"B", "C"}) || bar.Active() != 1 {
		t.Fatalf("unexpected bar %v active %d", got, bar.Active())
	}

	bar.Update(nil, 0)
	if bar.Len() != 0 || bar.Active() != -1 {
		t.Fatalf("empty enumeration should leave no active drive")
	}
}

package fs

import (
	"os"
	"time"
)

// ItemType distinguishes regular entries from the synthetic parent row.
type ItemType int

const (
	ItemInvalid ItemType = iota
	ItemFile
	ItemDirectory
	ItemParent
)

func (t ItemType) String() string {
	switch t {
	case ItemFile:
		return "file"
	case ItemDirectory:
		return "dir"
	case ItemParent:
		return "parent"
	default:
		return "invalid"
	}
}

// Item is one entry of a directory snapshot.
type Item struct {
	Name      string // without extension for files
	Extension string
	FullPath  string
	Type      ItemType
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
	Icon      string
	Hash      IdentityHash
}

// IsDir reports whether activating the item changes directory.
func (i Item) IsDir() bool {
	return i.Type == ItemDirectory || i.Type == ItemParent
}

// IsParent reports whether the item is the ".." pseudo-entry.
func (i Item) IsParent() bool {
	return i.Type == ItemParent
}

// FileName joins name and extension back together.
func (i Item) FileName() string {
	if i.Type == ItemParent {
		return ".."
	}
	if i.Extension == "" {
		return i.Name
	}
	return i.Name + "." + i.Extension
}

// IsHidden reports whether the entry should be treated as hidden.
func (i Item) IsHidden() bool {
	if i.Type == ItemParent {
		return false
	}
	return IsHidden(i.FullPath, i.FileName())
}

// Snapshot is one point-in-time listing of a directory.
type Snapshot struct {
	Path  string
	Items []Item
}

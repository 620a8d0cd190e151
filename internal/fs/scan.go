package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Icon keys classify entries and drives; the renderer colours by them.
const (
	IconParent  = "parent"
	IconDir     = "dir"
	IconFile    = "file"
	IconSymlink = "link"
	IconDrive   = "drive"
)

// SplitName separates a file name into base and extension. A leading dot
// file such as ".profile" has an empty base.
func SplitName(name string) (string, string) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// ParentItem builds the ".." pseudo-entry for dirPath, or false at a root.
func ParentItem(dirPath string) (Item, bool) {
	parent := filepath.Dir(dirPath)
	if parent == "" || parent == dirPath {
		return Item{}, false
	}
	item := Item{
		Name:     "..",
		FullPath: parent,
		Type:     ItemParent,
		Icon:     IconParent,
	}
	return WithIdentity(item), true
}

// ScanDirectory reads dirPath and returns its snapshot, parent row first.
func ScanDirectory(dirPath string) (Snapshot, error) {
	dirPath = filepath.Clean(dirPath)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return Snapshot{Path: dirPath}, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	items := make([]Item, 0, len(entries)+1)
	if parent, ok := ParentItem(dirPath); ok {
		items = append(items, parent)
	}

	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		rawName := e.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := (info.Mode() & os.ModeSymlink) != 0
		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		items = append(items, newItem(fullPath, norm.NFC.String(rawName), isDir, isSymlink, info))
	}

	return Snapshot{Path: dirPath, Items: items}, nil
}

func newItem(fullPath, name string, isDir, isSymlink bool, info os.FileInfo) Item {
	item := Item{
		FullPath:  fullPath,
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}

	switch {
	case isDir:
		item.Type = ItemDirectory
		item.Name = name
		item.Icon = IconDir
	default:
		item.Type = ItemFile
		item.Name, item.Extension = SplitName(name)
		item.Icon = IconFile
	}
	if isSymlink {
		item.Icon = IconSymlink
	}
	return WithIdentity(item)
}

//go:build windows

package fs

import (
	"golang.org/x/sys/windows"
)

// IsHidden reports entries carrying the hidden attribute. Dot files count as
// hidden when the attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// ShouldHideFromListing drops system reparse points (compatibility
// junctions such as "Documents and Settings") even when hidden files are
// shown.
func ShouldHideFromListing(fullPath, _ string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return false
	}
	const protected = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&protected == protected
}

func fileAttributes(path string) (uint32, error) {
	if path == "" {
		return 0, windows.ERROR_INVALID_NAME
	}
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}

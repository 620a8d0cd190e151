//go:build windows

package fs

import (
	"golang.org/x/sys/windows"
)

const caseFoldVolumes = true

func volumeRoots() ([]volumeRoot, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, err
	}
	var roots []volumeRoot
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		letter := string(rune('A' + i))
		roots = append(roots, volumeRoot{name: letter + ":", path: letter + `:\`})
	}
	return roots, nil
}

func volumeSpace(path string) (free, total uint64, err error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, err
	}
	var totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return 0, 0, err
	}
	return free, total, nil
}

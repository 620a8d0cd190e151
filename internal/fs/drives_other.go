//go:build !linux && !windows

package fs

import (
	"os"
	"path/filepath"
)

const caseFoldVolumes = false

func volumeRoots() ([]volumeRoot, error) {
	roots := []volumeRoot{{name: "/", path: "/"}}
	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return roots, nil
	}
	for _, e := range entries {
		path := filepath.Join("/Volumes", e.Name())
		if target, err := filepath.EvalSymlinks(path); err == nil && target == "/" {
			continue
		}
		roots = append(roots, volumeRoot{name: e.Name(), path: path})
	}
	return roots, nil
}

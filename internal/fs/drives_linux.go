//go:build linux

package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const caseFoldVolumes = false

var mountTable = "/proc/self/mounts"

func volumeRoots() ([]volumeRoot, error) {
	f, err := os.Open(mountTable)
	if err != nil {
		return []volumeRoot{{name: "/", path: "/"}}, nil
	}
	defer func() { _ = f.Close() }()
	return parseMounts(bufio.NewScanner(f)), nil
}

func parseMounts(sc *bufio.Scanner) []volumeRoot {
	roots := []volumeRoot{{name: "/", path: "/"}}
	seen := map[string]int{"/": 0}
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		device, mountPoint, fsType := fields[0], unescapeMount(fields[1]), fields[2]
		if !strings.HasPrefix(device, "/dev/") {
			continue
		}
		if idx, ok := seen[mountPoint]; ok {
			if roots[idx].device == "" {
				roots[idx].device, roots[idx].fsType = device, fsType
			}
			continue
		}
		if !userVisibleMount(mountPoint) {
			continue
		}
		seen[mountPoint] = len(roots)
		roots = append(roots, volumeRoot{
			name:   filepath.Base(mountPoint),
			path:   mountPoint,
			device: device,
			fsType: fsType,
		})
	}
	return roots
}

func userVisibleMount(mountPoint string) bool {
	if mountPoint == "/home" {
		return true
	}
	for _, prefix := range []string{"/media/", "/mnt/", "/run/media/"} {
		if strings.HasPrefix(mountPoint, prefix) {
			return true
		}
	}
	return false
}

// unescapeMount decodes the octal escapes the kernel uses for blanks.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(s)
}

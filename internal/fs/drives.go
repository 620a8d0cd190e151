package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// probeLimit bounds concurrent statfs calls; a stale network mount can
// block one of them for a long time.
const probeLimit = 4

// Drive is one enumerated volume surfaced as a panel shortcut.
type Drive struct {
	Name        string
	Description string
	Icon        string
	Path        string
}

type volumeRoot struct {
	name   string
	path   string
	device string
	fsType string
}

var volumeRootsFn = volumeRoots

// EnumerateDrives lists mounted volumes in platform order.
func EnumerateDrives(ctx context.Context) ([]Drive, error) {
	roots, err := volumeRootsFn()
	if err != nil {
		return nil, fmt.Errorf("enumerate volumes: %w", err)
	}

	drives := make([]Drive, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeLimit)
	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			drives[i] = Drive{
				Name:        root.name,
				Path:        root.path,
				Icon:        IconDrive,
				Description: describeVolume(root),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return drives, nil
}

func describeVolume(root volumeRoot) string {
	parts := make([]string, 0, 3)
	if root.device != "" {
		parts = append(parts, root.device)
	}
	if root.fsType != "" {
		parts = append(parts, root.fsType)
	}
	if free, total, err := volumeSpace(root.path); err == nil && total > 0 {
		parts = append(parts, fmt.Sprintf("%s free of %s", humanize.IBytes(free), humanize.IBytes(total)))
	}
	if len(parts) == 0 {
		return root.path
	}
	return strings.Join(parts, ", ")
}

// ActiveDrive returns the index of the drive containing path, or -1.
func ActiveDrive(drives []Drive, path string) int {
	path = filepath.Clean(path)
	best, bestLen := -1, -1
	for i, d := range drives {
		root := filepath.Clean(d.Path)
		if !pathWithin(path, root) {
			continue
		}
		if len(root) > bestLen {
			best, bestLen = i, len(root)
		}
	}
	return best
}

func pathWithin(path, root string) bool {
	if caseFoldVolumes {
		path, root = strings.ToLower(path), strings.ToLower(root)
	}
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}

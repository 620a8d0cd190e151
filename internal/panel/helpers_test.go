package panel

import (
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	"github.com/rs/zerolog"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// mkItems builds a snapshot; names ending in "/" are directories and ".."
// is the parent row.
func mkItems(names ...string) []fsutil.Item {
	items := make([]fsutil.Item, 0, len(names))
	for i, n := range names {
		var item fsutil.Item
		switch {
		case n == "..":
			item = fsutil.Item{Name: "..", Type: fsutil.ItemParent}
		case strings.HasSuffix(n, "/"):
			item = fsutil.Item{Name: strings.TrimSuffix(n, "/"), Type: fsutil.ItemDirectory}
		default:
			base, ext := fsutil.SplitName(n)
			item = fsutil.Item{Name: base, Extension: ext, Type: fsutil.ItemFile, Size: int64(100 * (i + 1))}
		}
		item.Modified = baseTime.Add(time.Duration(i) * time.Hour)
		items = append(items, fsutil.WithIdentity(item))
	}
	return items
}

func hashOf(items []fsutil.Item, fileName string) fsutil.IdentityHash {
	for _, it := range items {
		if it.FileName() == fileName {
			return it.Hash
		}
	}
	return fsutil.NoIdentity
}

func newTestPanel() *Panel {
	return New(zerolog.Nop())
}

func viewNames(p *Panel) []string {
	out := make([]string, p.Count())
	for i := range out {
		out[i] = p.RowAt(i).Item.FileName()
	}
	return out
}

func set(hashes ...fsutil.IdentityHash) HashSet {
	s := make(HashSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

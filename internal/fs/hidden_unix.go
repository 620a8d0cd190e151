//go:build !windows

package fs

// IsHidden reports dot files as hidden.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// ShouldHideFromListing never drops entries outside Windows.
func ShouldHideFromListing(_, _ string) bool {
	return false
}

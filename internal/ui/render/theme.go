package render

import (
	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	HeaderActiveBg   tcell.Color
	HeaderActiveFg   tcell.Color
	TitleFg          tcell.Color
	HiddenFg         tcell.Color
	CursorBg         tcell.Color
	CursorFg         tcell.Color
	CursorInactiveBg tcell.Color
	MarkedFg         tcell.Color
	DirectoryFg      tcell.Color
	SymlinkFg        tcell.Color
	FileFg           tcell.Color
	DriveFg          tcell.Color
	DriveActiveBg    tcell.Color
	DriveActiveFg    tcell.Color
	SeparatorFg      tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
	ErrorFg          tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		HeaderActiveBg:   tcell.Color33,
		HeaderActiveFg:   tcell.ColorWhite,
		TitleFg:          tcell.ColorLightSlateGray,
		HiddenFg:         tcell.ColorLightSlateGray,
		CursorBg:         tcell.Color33,
		CursorFg:         tcell.ColorWhite,
		CursorInactiveBg: tcell.Color238,
		MarkedFg:         tcell.ColorYellow,
		DirectoryFg:      tcell.Color33,
		SymlinkFg:        tcell.Color51,
		FileFg:           tcell.ColorDefault,
		DriveFg:          tcell.ColorLightSlateGray,
		DriveActiveBg:    tcell.Color238,
		DriveActiveFg:    tcell.ColorWhite,
		SeparatorFg:      tcell.ColorLightSlateGray,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
		ErrorFg:          tcell.ColorRed,
	}
}

// IconColor maps an entry or drive icon key to its foreground colour.
func (t ColorTheme) IconColor(icon string) tcell.Color {
	switch icon {
	case fsutil.IconDir, fsutil.IconParent:
		return t.DirectoryFg
	case fsutil.IconSymlink:
		return t.SymlinkFg
	case fsutil.IconDrive:
		return t.DriveFg
	default:
		return t.FileFg
	}
}

package ui

// Escape codes of the active theme. Under NoColorTheme they are empty, so
// callers interpolate them unconditionally.

func ColorReset() string     { return GetCurrentTheme().sgr("0") }
func ColorBold() string      { return GetCurrentTheme().sgr("1") }
func ColorUnderline() string { return GetCurrentTheme().sgr("4") }

func ColorRed() string     { t := GetCurrentTheme(); return t.fg(t.Error) }
func ColorGreen() string   { t := GetCurrentTheme(); return t.fg(t.Success) }
func ColorYellow() string  { t := GetCurrentTheme(); return t.fg(t.Warning) }
func ColorBlue() string    { t := GetCurrentTheme(); return t.fg(t.Accent) }
func ColorMagenta() string { t := GetCurrentTheme(); return t.fg(t.Info) }
func ColorCyan() string    { t := GetCurrentTheme(); return t.fg(t.Muted) }

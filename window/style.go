package window

// Style bits stripped from an embedded window so it loses its own chrome.
const chromeStyle = WS_CAPTION | WS_THICKFRAME | WS_SYSMENU | WS_MINIMIZEBOX | WS_MAXIMIZEBOX

// Extended style bits that would give an embedded window its own taskbar entry or frame edges.
const frameExStyle = WS_EX_APPWINDOW | WS_EX_WINDOWEDGE | WS_EX_DLGMODALFRAME

// EmbeddedStyle returns style with caption, resize frame, system menu and
// minimize/maximize boxes removed and WS_CHILD set. It is idempotent.
func EmbeddedStyle(style uint32) uint32 {
	return (style &^ chromeStyle) | WS_CHILD
}

// EmbeddedExStyle returns exStyle with the app-window, raised-edge and dialog-frame bits cleared.
func EmbeddedExStyle(exStyle uint32) uint32 {
	return exStyle &^ frameExStyle
}

// HostStyle returns the host style with WS_CLIPCHILDREN set so host repaints skip the embedded region.
func HostStyle(style uint32) uint32 {
	return style | WS_CLIPCHILDREN
}

// IsEmbeddedStyle reports whether style already carries no chrome and is marked as a child.
func IsEmbeddedStyle(style uint32) bool {
	return style&chromeStyle == 0 && style&WS_CHILD != 0
}

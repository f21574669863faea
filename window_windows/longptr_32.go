//go:build windows && (386 || arm)

package window_windows

// 32-bit user32 only exports the LONG variants, the Ptr names are macros.
var (
	procGetWindowLongPtrW = moduser32.NewProc("GetWindowLongW")
	procSetWindowLongPtrW = moduser32.NewProc("SetWindowLongW")
)

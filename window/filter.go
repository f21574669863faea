package window

// Filter applies the drag suppression policy shared by every hooked window.
// It reports handled=true with the value to return when the message must not
// reach the window's original procedure.
//
// Hit-test queries always answer HTCLIENT so the caption drag gesture never
// starts, and SC_MOVE system commands are swallowed. Everything else passes.
func Filter(msg uint32, wparam uintptr) (result uintptr, handled bool) {
	switch msg {
	case WM_NCHITTEST:
		return HTCLIENT, true

	case WM_SYSCOMMAND:
		// the low four bits are used internally by the system
		if wparam&0xFFF0 == SC_MOVE {
			return 0, true
		}
	}

	return 0, false
}

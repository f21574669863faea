//go:build windows

package window_windows

import (
	"fmt"

	"winembed/window"
)

// SetCornerMask builds the region described by mask and hands it to the window.
// Once SetWindowRgn succeeds the system owns the region; it is only deleted here
// when the call fails.
func (d *Desktop) SetCornerMask(h window.Handle, mask *window.CornerMask) error {
	if mask == nil {
		ret, _, err := procSetWindowRgn.Call(uintptr(h), 0, 1)
		if ret == 0 {
			return fmt.Errorf("SetWindowRgn(nil) failed: %v", err)
		}
		return nil
	}

	region, _, err := procCreateRoundRectRgn.Call(
		signed(mask.Rounded.Left),
		signed(mask.Rounded.Top),
		signed(mask.Rounded.Right),
		signed(mask.Rounded.Bottom),
		signed(mask.Diameter),
		signed(mask.Diameter),
	)
	if region == 0 {
		return fmt.Errorf("CreateRoundRectRgn failed: %v", err)
	}

	square, _, err := procCreateRectRgn.Call(
		signed(mask.Square.Left),
		signed(mask.Square.Top),
		signed(mask.Square.Right),
		signed(mask.Square.Bottom),
	)
	if square == 0 {
		d.deleteObject(region)
		return fmt.Errorf("CreateRectRgn failed: %v", err)
	}

	procCombineRgn.Call(region, region, square, RGN_OR)
	d.deleteObject(square)

	ret, _, err := procSetWindowRgn.Call(uintptr(h), region, 1)
	if ret == 0 {
		d.deleteObject(region)
		return fmt.Errorf("SetWindowRgn failed: %v", err)
	}
	return nil
}

func (d *Desktop) deleteObject(obj uintptr) {
	if ret, _, err := procDeleteObject.Call(obj); ret == 0 {
		d.log.Warn("DeleteObject failed: ", err)
	}
}

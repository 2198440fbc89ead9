package menu

import "image"

// chooseLocation picks the top-left corner for a popup of the given size.
//
// With an exclusion rectangle the popup sits to the right of it, top aligned,
// and flips to the left or upwards when it would leave the monitor. Without
// one the anchor is pulled up and left until the popup fits the work area.
// Either way the result never starts above or left of the area used.
func chooseLocation(anchor image.Point, size image.Point, exclude *image.Rectangle, monitor, work image.Rectangle) image.Point {
	pt := anchor
	area := work
	if exclude != nil {
		area = monitor
		pt.X = exclude.Max.X
		if monitor.Max.X < exclude.Max.X+size.X {
			pt.X = exclude.Min.X - size.X
		}
		pt.Y = exclude.Min.Y
		if monitor.Max.Y < exclude.Min.Y+size.Y {
			pt.Y = exclude.Max.Y - size.Y
		}
	} else {
		if work.Max.X < pt.X+size.X {
			pt.X -= size.X
		}
		if work.Max.Y < pt.Y+size.Y {
			pt.Y -= size.Y
		}
	}
	if pt.X < area.Min.X {
		pt.X = area.Min.X
	}
	if pt.Y < area.Min.Y {
		pt.Y = area.Min.Y
	}
	return pt
}

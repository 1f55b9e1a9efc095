//go:build windows

package main

import "github.com/lxn/walk"

// IconResourceID is the resource identifier of the program icon
// embedded by the generate step.
const IconResourceID = 5

func programIcon() *walk.Icon {
	icon, err := walk.NewIconFromResourceId(IconResourceID)
	if err != nil {
		return walk.IconInformation()
	}
	return icon
}

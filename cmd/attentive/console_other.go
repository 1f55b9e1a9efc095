//go:build !windows

package main

func prepareConsole(attach bool) error {
	return nil
}

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package sys

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// platformRelease returns the kernel release reported by uname, or the empty
// string if uname fails.
func platformRelease() string {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		return ""
	}
	return string(bytes.Trim(uname.Release[:], "\x00"))
}

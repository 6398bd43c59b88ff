//go:build linux

package platform

import (
	"golang.org/x/sys/unix"
)

// KernelRelease returns the running kernel's release string. Under the Linux
// subsystem it usually carries a "microsoft" suffix.
func KernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}

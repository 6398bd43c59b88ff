//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// KernelRelease returns the Windows version as major.minor.build.
func KernelRelease() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}

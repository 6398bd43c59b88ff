//go:build !linux && !windows

package platform

// KernelRelease is not reported on hosts where clipboard retrieval is
// unsupported.
func KernelRelease() string {
	return ""
}

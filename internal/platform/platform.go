package platform

import (
	"os"
	"runtime"

	"github.com/berrythewa/clippaste/internal/types"
)

// DefaultInteropMount is the path whose presence distinguishes the Linux
// subsystem from a plain Linux host.
const DefaultInteropMount = "/mnt/c/Windows"

// Resolver decides which clipboard environment the process runs in.
type Resolver struct {
	// GOOS is the operating system as reported by the Go runtime.
	GOOS string
	// InteropMount is probed on Linux to detect the Windows interop layer.
	InteropMount string
	// Stat is used for the filesystem probe.
	Stat func(name string) (os.FileInfo, error)
}

// NewResolver returns a Resolver for the running host.
func NewResolver(interopMount string) *Resolver {
	if interopMount == "" {
		interopMount = DefaultInteropMount
	}
	return &Resolver{
		GOOS:         runtime.GOOS,
		InteropMount: interopMount,
		Stat:         os.Stat,
	}
}

// Resolve reports the environment. Native Windows wins regardless of the
// filesystem; Linux needs the interop mount; everything else is unsupported.
func (r *Resolver) Resolve() types.Environment {
	switch r.GOOS {
	case "windows":
		return types.EnvNativeWindows
	case "linux":
		if r.interopMounted() {
			return types.EnvLinuxSubsystem
		}
	}
	return types.EnvUnsupported
}

func (r *Resolver) interopMounted() bool {
	stat := r.Stat
	if stat == nil {
		stat = os.Stat
	}
	mount := r.InteropMount
	if mount == "" {
		mount = DefaultInteropMount
	}
	_, err := stat(mount)
	return err == nil
}

// Resolve resolves the environment of the running host with the default
// interop mount.
func Resolve() types.Environment {
	return NewResolver("").Resolve()
}

package platform

import (
	"os/exec"

	"github.com/berrythewa/clippaste/internal/types"
)

// Delegate shell binaries. PowerShell 7 is preferred; Windows PowerShell
// ships with every Windows install and is the fallback.
const (
	shellPwsh        = "pwsh"
	shellWindowsPS   = "powershell"
	interopExeSuffix = ".exe"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DelegateShell returns the PowerShell executable used to query the clipboard.
// A non-empty override is returned as is.
func DelegateShell(env types.Environment, override string) string {
	if override != "" {
		return override
	}

	suffix := ""
	if env == types.EnvLinuxSubsystem {
		// Windows binaries are only reachable through interop by their full name.
		suffix = interopExeSuffix
	}

	preferred := shellPwsh + suffix
	if _, err := lookPath(preferred); err == nil {
		return preferred
	}
	fallback := shellWindowsPS + suffix
	if _, err := lookPath(fallback); err == nil {
		return fallback
	}
	return preferred
}

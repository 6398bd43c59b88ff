// Package pathconv rewrites Windows paths into the convention of the
// terminal they are pasted into.
package pathconv

import (
	"os"
	"strings"

	"github.com/berrythewa/clippaste/internal/types"
)

// mountRoot is where the Linux subsystem exposes Windows drives.
const mountRoot = "/mnt/"

// Convert returns raw in the form the destination terminal understands.
//
// Paths are rewritten to the /mnt/<drive> form when running inside the Linux
// subsystem or when the terminal's name mentions wsl; otherwise raw is
// returned untouched. Convert never fails: input it does not recognise passes
// through.
func Convert(raw string, env types.Environment, terminal types.Terminal) string {
	if env == types.EnvLinuxSubsystem || IsWSLTerminal(terminal) {
		return ToWSL(raw)
	}
	return raw
}

// IsWSLTerminal reports whether the terminal's display name contains "wsl",
// ignoring case.
func IsWSLTerminal(terminal types.Terminal) bool {
	return strings.Contains(strings.ToLower(terminal.Name), "wsl")
}

// ToWSL turns backslashes into slashes and a leading uppercase drive letter
// prefix "X:" into "/mnt/x". Nothing past the prefix is inspected.
func ToWSL(raw string) string {
	p := strings.ReplaceAll(raw, `\`, "/")
	if hasDrivePrefix(p) {
		return mountRoot + strings.ToLower(p[:1]) + p[2:]
	}
	return p
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[0] >= 'A' && p[0] <= 'Z' && p[1] == ':'
}

// UNC roots under which Windows exposes a distro's own filesystem.
var wslShareRoots = []string{`\\wsl.localhost\`, `\\wsl$\`}

// HostPath returns a mapper from the delegate's Windows paths to paths this
// process can open. On native Windows they are already local. Inside the
// Linux subsystem the running distro is taken from $WSL_DISTRO_NAME.
func HostPath(env types.Environment) func(string) string {
	if env == types.EnvLinuxSubsystem {
		distro := os.Getenv("WSL_DISTRO_NAME")
		return func(p string) string { return WSLHostPath(p, distro) }
	}
	return func(p string) string { return p }
}

// WSLHostPath maps a Windows path to its location inside distro. Paths on
// the distro's own \\wsl.localhost or \\wsl$ share become rooted Linux
// paths; everything else goes through ToWSL.
func WSLHostPath(p, distro string) string {
	if distro != "" {
		for _, root := range wslShareRoots {
			prefix := root + distro
			if len(p) < len(prefix) || !strings.EqualFold(p[:len(prefix)], prefix) {
				continue
			}
			rest := p[len(prefix):]
			if rest != "" && rest[0] != '\\' && rest[0] != '/' {
				// Another distro whose name starts with this one.
				continue
			}
			return "/" + strings.TrimLeft(strings.ReplaceAll(rest, `\`, "/"), "/")
		}
	}
	return ToWSL(p)
}

// JoinWindows appends name to a Windows directory, tolerating a trailing
// separator on dir.
func JoinWindows(dir, name string) string {
	dir = strings.TrimRight(dir, `\/`)
	if dir == "" {
		return name
	}
	return dir + `\` + name
}

package pathconv

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/berrythewa/clippaste/internal/types"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		env      types.Environment
		terminal string
		want     string
	}{
		{"wsl env rewrites drive", `C:\Users\a\f.txt`, types.EnvLinuxSubsystem, "", "/mnt/c/Users/a/f.txt"},
		{"wsl terminal overrides native env", `D:\x\y.png`, types.EnvNativeWindows, "bash (wsl)", "/mnt/d/x/y.png"},
		{"terminal match ignores case", `E:\z`, types.EnvNativeWindows, "Ubuntu WSL", "/mnt/e/z"},
		{"native terminal untouched", `C:\a\b`, types.EnvNativeWindows, "PowerShell", `C:\a\b`},
		{"unc path only gets slashes", `\\server\share\f`, types.EnvLinuxSubsystem, "", "//server/share/f"},
		{"lowercase drive is not a drive prefix", `c:\a`, types.EnvLinuxSubsystem, "", "c:/a"},
		{"already converted", "/mnt/c/a", types.EnvLinuxSubsystem, "", "/mnt/c/a"},
		{"colon later in path is kept", `C:\a\b:c`, types.EnvLinuxSubsystem, "", "/mnt/c/a/b:c"},
		{"empty", "", types.EnvLinuxSubsystem, "", ""},
		{"bare drive", "C:", types.EnvLinuxSubsystem, "", "/mnt/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.raw, tt.env, types.Terminal{Name: tt.terminal})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostPath(t *testing.T) {
	assert.Equal(t, `C:\tmp\a`, HostPath(types.EnvNativeWindows)(`C:\tmp\a`))
	assert.Equal(t, "/mnt/c/tmp/a", HostPath(types.EnvLinuxSubsystem)(`C:\tmp\a`))

	t.Setenv("WSL_DISTRO_NAME", "Ubuntu")
	assert.Equal(t, "/home/me/f.txt", HostPath(types.EnvLinuxSubsystem)(`\\wsl.localhost\Ubuntu\home\me\f.txt`))
	assert.Equal(t, `\\wsl.localhost\Ubuntu\home`, HostPath(types.EnvNativeWindows)(`\\wsl.localhost\Ubuntu\home`))
}

func TestWSLHostPath(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		distro string
		want   string
	}{
		{"localhost share", `\\wsl.localhost\Ubuntu\home\me\a.txt`, "Ubuntu", "/home/me/a.txt"},
		{"legacy share", `\\wsl$\Ubuntu\etc\hosts`, "Ubuntu", "/etc/hosts"},
		{"share host is case-insensitive", `\\WSL.LOCALHOST\ubuntu\tmp`, "Ubuntu", "/tmp"},
		{"share root", `\\wsl.localhost\Ubuntu`, "Ubuntu", "/"},
		{"share root with separator", `\\wsl.localhost\Ubuntu\`, "Ubuntu", "/"},
		{"other distro", `\\wsl.localhost\Debian\home`, "Ubuntu", "//wsl.localhost/Debian/home"},
		{"distro name prefix only", `\\wsl.localhost\Ubuntu-22.04\home`, "Ubuntu", "//wsl.localhost/Ubuntu-22.04/home"},
		{"unknown distro", `\\wsl.localhost\Ubuntu\home`, "", "//wsl.localhost/Ubuntu/home"},
		{"network share", `\\server\share\f`, "Ubuntu", "//server/share/f"},
		{"drive path", `D:\data\x`, "Ubuntu", "/mnt/d/data/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WSLHostPath(tt.raw, tt.distro))
		})
	}
}

func TestJoinWindows(t *testing.T) {
	assert.Equal(t, `C:\Temp\f.png`, JoinWindows(`C:\Temp\`, "f.png"))
	assert.Equal(t, `C:\Temp\f.png`, JoinWindows(`C:\Temp`, "f.png"))
	assert.Equal(t, "f.png", JoinWindows("", "f.png"))
}

func windowsPathGen() gopter.Gen {
	return gopter.CombineGens(
		gen.RuneRange('A', 'Z'),
		gen.SliceOf(gen.AlphaString()),
	).Map(func(vals []interface{}) string {
		drive := vals[0].(rune)
		parts := vals[1].([]string)
		return string(drive) + `:\` + strings.Join(parts, `\`)
	})
}

func TestConvertProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("converting converted output is a no-op", prop.ForAll(
		func(raw string, terminal string) bool {
			term := types.Terminal{Name: terminal}
			once := Convert(raw, types.EnvLinuxSubsystem, term)
			return Convert(once, types.EnvLinuxSubsystem, term) == once
		},
		windowsPathGen(),
		gen.AlphaString(),
	))

	properties.Property("converted drive paths live under /mnt and have no backslashes", prop.ForAll(
		func(raw string) bool {
			got := Convert(raw, types.EnvLinuxSubsystem, types.Terminal{})
			return strings.HasPrefix(got, mountRoot) && !strings.Contains(got, `\`)
		},
		windowsPathGen(),
	))

	properties.Property("native env with a non-wsl terminal passes through", prop.ForAll(
		func(raw string, terminal string) bool {
			term := types.Terminal{Name: terminal}
			if IsWSLTerminal(term) {
				return true
			}
			return Convert(raw, types.EnvNativeWindows, term) == raw
		},
		gen.AnyString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

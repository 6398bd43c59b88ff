package types

import (
	"fmt"
	"strings"
	"time"
)

// Environment identifies which path convention the host clipboard delegate
// and the destination terminal live in.
type Environment int

const (
	EnvUnsupported Environment = iota
	EnvNativeWindows
	EnvLinuxSubsystem
)

func (e Environment) String() string {
	switch e {
	case EnvNativeWindows:
		return "windows"
	case EnvLinuxSubsystem:
		return "wsl"
	default:
		return "unsupported"
	}
}

// Supported reports whether clipboard retrieval can run in this environment.
func (e Environment) Supported() bool {
	return e == EnvNativeWindows || e == EnvLinuxSubsystem
}

// ParseEnvironment maps the names produced by String back to an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win32", "native":
		return EnvNativeWindows, nil
	case "wsl", "linux-subsystem":
		return EnvLinuxSubsystem, nil
	case "unsupported", "":
		return EnvUnsupported, nil
	default:
		return EnvUnsupported, fmt.Errorf("unknown environment %q", s)
	}
}

// Terminal is the destination terminal as known to the caller.
// Only its display name is consulted.
type Terminal struct {
	Name string `json:"name" yaml:"name"`
}

// PasteRecord is one successful paste as kept in history
type PasteRecord struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Environment string    `json:"environment"`
	Terminal    string    `json:"terminal,omitempty"`
	Paths       []string  `json:"paths"`
	Converted   []string  `json:"converted"`
	Image       bool      `json:"image,omitempty"`
}

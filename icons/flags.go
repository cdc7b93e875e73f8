package icons

import "strings"

// Flags describes properties of the icon's owner that affect badging.
type Flags uint8

const (
	// FlagWork marks an icon owned by a profile other than the current process user.
	FlagWork Flags = 1 << 0
	// FlagInstant marks an instant app.
	FlagInstant Flags = 1 << 1
)

// Has reports whether any bit of o is set.
func (f Flags) Has(o Flags) bool { return f&o != 0 }

// With returns f with o set.
func (f Flags) With(o Flags) Flags { return f | o }

// Without returns f with o cleared.
func (f Flags) Without(o Flags) Flags { return f &^ o }

func (f Flags) String() string {
	var parts []string
	if f.Has(FlagWork) {
		parts = append(parts, "work")
	}
	if f.Has(FlagInstant) {
		parts = append(parts, "instant")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// CreationFlags tune how NewIcon builds a drawable.
type CreationFlags uint8

const (
	// CreationThemed renders the themed variant when the info has one.
	CreationThemed CreationFlags = 1 << 0
	// CreationNoBadge suppresses all badges.
	CreationNoBadge CreationFlags = 1 << 1
)

// Has reports whether any bit of o is set.
func (f CreationFlags) Has(o CreationFlags) bool { return f&o != 0 }

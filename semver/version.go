// Package semver provides the ordered (major, minor, patch) version
// triple used to identify an Engine Library schema, and the catalog
// of versions this library knows how to handle.
package semver

import "fmt"

// Version is a semantic version triple. Two versions with the same
// triple but a different Variant are considered the same Version for
// ordering purposes; the variant only matters for schema lookup.
type Version struct {
	Major int
	Minor int
	Patch int

	// Variant distinguishes schema forms that share a (major, minor,
	// patch) triple but differ in column typing. The empty string is
	// the plain, unambiguous form.
	Variant string
}

// String renders the version as "major.minor.patch" or, for a
// variant, "major.minor.patch_variant".
func (v Version) String() string {
	if v.Variant == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d_%s", v.Major, v.Minor, v.Patch, v.Variant)
} // func (v Version) String() string

// Triple reports whether two versions share the same (major, minor,
// patch) triple, ignoring Variant.
func (v Version) Triple(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
} // func (v Version) Triple(other Version) bool

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater
// than other, ordering lexicographically on (major, minor, patch).
// Variant does not participate in ordering.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return sign(v.Major - other.Major)
	}
	if v.Minor != other.Minor {
		return sign(v.Minor - other.Minor)
	}
	if v.Patch != other.Patch {
		return sign(v.Patch - other.Patch)
	}
	return 0
} // func (v Version) Compare(other Version) int

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// AtLeast reports whether v orders at or after other.
func (v Version) AtLeast(other Version) bool { return v.Compare(other) >= 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
} // func sign(n int) int

// Known named versions, in the order hardware firmware revisions
// introduced them. 1.18.0 has two schema-identical-but-for-column-typing
// variants, distinguished only at detection time (see the storage
// package's version detection).
var (
	V1_6_0    = Version{1, 6, 0, ""}
	V1_7_1    = Version{1, 7, 1, ""}
	V1_9_1    = Version{1, 9, 1, ""}
	V1_11_1   = Version{1, 11, 1, ""}
	V1_13_0   = Version{1, 13, 0, ""}
	V1_13_1   = Version{1, 13, 1, ""}
	V1_13_2   = Version{1, 13, 2, ""}
	V1_15_0   = Version{1, 15, 0, ""}
	V1_17_0   = Version{1, 17, 0, ""}
	V1_18_0FW = Version{1, 18, 0, "fw"}
	V1_18_0EP = Version{1, 18, 0, "ep"}
)

// All lists every recognized version, in ascending order.
var All = []Version{
	V1_6_0,
	V1_7_1,
	V1_9_1,
	V1_11_1,
	V1_13_0,
	V1_13_1,
	V1_13_2,
	V1_15_0,
	V1_17_0,
	V1_18_0FW,
	V1_18_0EP,
}

// IsAmbiguous reports whether a bare (major, minor, patch) triple,
// read off an Information row without any column-type probing, could
// name more than one known variant.
func IsAmbiguous(major, minor, patch int) bool {
	return major == 1 && minor == 18 && patch == 0
} // func IsAmbiguous(major, minor, patch int) bool

// Supported reports whether v names a recognized version.
func Supported(v Version) bool {
	for _, k := range All {
		if k == v {
			return true
		}
	}
	return false
} // func Supported(v Version) bool

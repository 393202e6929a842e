package depot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PackageIdent identifies a package in a depot. Origin and Name are always
// present; Version and Release narrow the ident down to a single artifact.
type PackageIdent struct {
	Origin  string
	Name    string
	Version string
	Release string
}

// ParseIdent parses an ident of the form "origin/name[/version[/release]]".
func ParseIdent(s string) (PackageIdent, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || len(parts) > 4 {
		return PackageIdent{}, fmt.Errorf("invalid package ident %q: expected origin/name[/version[/release]]", s)
	}
	for _, part := range parts {
		if part == "" {
			return PackageIdent{}, fmt.Errorf("invalid package ident %q: empty segment", s)
		}
	}

	ident := PackageIdent{Origin: parts[0], Name: parts[1]}
	if len(parts) > 2 {
		ident.Version = parts[2]
	}
	if len(parts) > 3 {
		ident.Release = parts[3]
	}
	return ident, nil
}

// String renders the ident in its path form, omitting unset segments.
func (i PackageIdent) String() string {
	return strings.Join(i.segments(), "/")
}

// FullyQualified reports whether the ident pins a single artifact, i.e. all
// four segments are set.
func (i PackageIdent) FullyQualified() bool {
	return i.Origin != "" && i.Name != "" && i.Version != "" && i.Release != ""
}

// Satisfies reports whether other is a completion of this ident: equal in
// every segment this ident has set.
func (i PackageIdent) Satisfies(other PackageIdent) bool {
	if i.Origin != other.Origin || i.Name != other.Name {
		return false
	}
	if i.Version != "" && i.Version != other.Version {
		return false
	}
	if i.Release != "" && i.Release != other.Release {
		return false
	}
	return true
}

// ArchiveName returns the canonical artifact file name for a fully
// qualified ident.
func (i PackageIdent) ArchiveName() string {
	return fmt.Sprintf("%s-%s-%s-%s.hart", i.Origin, i.Name, i.Version, i.Release)
}

// segments returns the set path segments in order. An ident may be origin
// only, which is how origin-wide package listings are addressed.
func (i PackageIdent) segments() []string {
	segs := []string{i.Origin}
	if i.Name != "" {
		segs = append(segs, i.Name)
		if i.Version != "" {
			segs = append(segs, i.Version)
			if i.Release != "" {
				segs = append(segs, i.Release)
			}
		}
	}
	return segs
}

// MarshalJSON encodes the ident in its string form; that is how the depot
// API represents idents on the wire.
func (i PackageIdent) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *PackageIdent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ident, err := ParseIdent(s)
	if err != nil {
		return err
	}
	*i = ident
	return nil
}

package inventory

import (
	"path/filepath"
	"strings"
)

// Modality names a manifest branch.
type Modality string

const (
	Anatomical Modality = "anatomical_scan"
	Functional Modality = "functional_scan"
)

// ScanType selects which modality a run records.
type ScanType string

const (
	ScanTypeAnat ScanType = "anat"
	ScanTypeFunc ScanType = "func"
)

// Modality maps the selector to its manifest branch. Unknown selectors map
// to nothing.
func (s ScanType) Modality() (Modality, bool) {
	switch s {
	case ScanTypeAnat:
		return Anatomical, true
	case ScanTypeFunc:
		return Functional, true
	default:
		return "", false
	}
}

const volumeMarker = ".nii"

// IsVolumeFile reports whether name looks like a NIfTI volume (plain or
// compressed).
func IsVolumeFile(name string) bool {
	return strings.Contains(name, volumeMarker)
}

type rule struct {
	modality Modality
	scanID   []string
	filename []string
}

func (r rule) matches(scanID, filename string) bool {
	for _, token := range r.scanID {
		if strings.Contains(scanID, token) {
			return true
		}
	}
	for _, token := range r.filename {
		if strings.Contains(filename, token) {
			return true
		}
	}
	return false
}

// rules are evaluated in order; the first match decides the modality.
var rules = []rule{
	{
		modality: Functional,
		scanID:   []string{"rest", "func"},
		filename: []string{"rest", "func"},
	},
	{
		modality: Anatomical,
		scanID:   []string{"anat"},
		filename: []string{"anat", "mprage"},
	},
}

// Classify assigns a modality from the scan directory name and the file name.
// Matching is case-sensitive substring matching.
func Classify(scanID, filename string) (Modality, bool) {
	for _, r := range rules {
		if r.matches(scanID, filename) {
			return r.modality, true
		}
	}
	return "", false
}

// Identity locates one scan within the manifest.
type Identity struct {
	Subject  string   `json:"subject"`
	Session  string   `json:"session"`
	Scan     string   `json:"scan"`
	Modality Modality `json:"modality"`
}

// SplitSegments returns the components of path below root with empty
// components dropped.
func SplitSegments(root, path string) []string {
	remainder := strings.TrimPrefix(filepath.ToSlash(path), filepath.ToSlash(root))
	parts := strings.Split(remainder, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// ParseIdentity reads subject, session, and scan from the first three
// segments. Extra segments are ignored.
func ParseIdentity(segments []string) (subject, session, scan string, ok bool) {
	if len(segments) < 3 {
		return "", "", "", false
	}
	return segments[0], segments[1], segments[2], true
}

package inventory

import "sort"

// Scans maps a scan directory name to the absolute path of its volume file.
type Scans map[string]string

// Session groups scans by modality.
type Session map[Modality]Scans

// Subject groups sessions by session identifier.
type Subject map[string]Session

// Manifest is the full subject → session → modality → scan → path tree.
type Manifest map[string]Subject

// Entry is one flattened manifest leaf.
type Entry struct {
	Identity
	Path string `json:"path"`
}

// NewManifest returns an empty manifest.
func NewManifest() Manifest {
	return Manifest{}
}

// Insert records path under id unless an entry already exists. It reports
// whether the path was stored.
func (m Manifest) Insert(id Identity, path string) bool {
	subject, ok := m[id.Subject]
	if !ok {
		subject = Subject{}
		m[id.Subject] = subject
	}
	session, ok := subject[id.Session]
	if !ok {
		session = Session{}
		subject[id.Session] = session
	}
	scans, ok := session[id.Modality]
	if !ok {
		scans = Scans{}
		session[id.Modality] = scans
	}
	if _, exists := scans[id.Scan]; exists {
		return false
	}
	scans[id.Scan] = path
	return true
}

// Lookup returns the path stored for id.
func (m Manifest) Lookup(id Identity) (string, bool) {
	path, ok := m[id.Subject][id.Session][id.Modality][id.Scan]
	return path, ok
}

// Len counts leaf entries.
func (m Manifest) Len() int {
	total := 0
	for _, subject := range m {
		for _, session := range subject {
			for _, scans := range session {
				total += len(scans)
			}
		}
	}
	return total
}

// Subjects returns the subject identifiers in sorted order.
func (m Manifest) Subjects() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Entries flattens the manifest, ordered by subject, session, modality, scan.
func (m Manifest) Entries() []Entry {
	entries := make([]Entry, 0, m.Len())
	for subjectID, subject := range m {
		for sessionID, session := range subject {
			for modality, scans := range session {
				for scanID, path := range scans {
					entries = append(entries, Entry{
						Identity: Identity{Subject: subjectID, Session: sessionID, Scan: scanID, Modality: modality},
						Path:     path,
					})
				}
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Session != b.Session {
			return a.Session < b.Session
		}
		if a.Modality != b.Modality {
			return a.Modality < b.Modality
		}
		return a.Scan < b.Scan
	})
	return entries
}

// Summary counts what a scan run saw and why files were left out.
type Summary struct {
	FilesVisited int `json:"files_visited"`
	VolumeFiles  int `json:"volume_files"`
	Recorded     int `json:"recorded"`
	Duplicates   int `json:"duplicates"`
	ShortPaths   int `json:"short_paths"`
	Unclassified int `json:"unclassified"`
	Filtered     int `json:"filtered"`
	Unreadable   int `json:"unreadable"`
}

package domain

// LatestKey is the distinguished ledger key tracking the newest install path.
const LatestKey = "latest"

// Ledger is the persisted mapping from version tag to absolute install path
// for one tool, tracking which installed copy is "latest". It is never
// deleted by normal operation.
type Ledger map[string]string

// Latest returns the install path recorded under the "latest" key.
func (l Ledger) Latest() string {
	return l[LatestKey]
}

// Record registers a freshly created install path for a version tag and
// moves "latest" to it.
func (l Ledger) Record(version, path string) {
	l[version] = path
	l[LatestKey] = path
}

// CopyForward records an existing version tag as pointing at the current
// "latest" path, without moving "latest".
func (l Ledger) CopyForward(version string) {
	l[version] = l[LatestKey]
}

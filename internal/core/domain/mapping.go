package domain

// ProjectMapping is one row of the label to project table.
// A label may appear in several rows, and so may a project.
type ProjectMapping struct {
	Label         string `json:"label" toml:"label"`
	ProjectNumber int    `json:"projectNumber" toml:"projectNumber"`
}

// Matches reports whether the row applies to the given label.
// An event without a label matches no row.
func (m ProjectMapping) Matches(label string) bool {
	return label != "" && m.Label == label
}

// ProjectIdentity pairs a project's number with its opaque node ID.
// It is resolved per operation and never cached.
type ProjectIdentity struct {
	Number int
	ID     string
}

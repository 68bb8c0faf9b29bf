package domain

// ChangedFile is one source path that differs between the base reference and
// the working tree, annotated with the documents whose patterns match it.
type ChangedFile struct {
	// Path is the changed file, relative to the repository root.
	Path string `json:"path"`

	// Documents are the paths of documents whose Paths patterns match.
	Documents []string `json:"documents,omitempty"`
}

// DocumentImpact summarises how a change set touched one document.
type DocumentImpact struct {
	// Document is the document path.
	Document string `json:"document"`

	// MatchedPaths are the changed files matched by the document's
	// patterns.
	MatchedPaths []string `json:"matched_paths"`

	// SelfChanged is true if the document file itself is in the change set.
	SelfChanged bool `json:"self_changed"`
}

// Stale returns true if the document is impacted but was not itself
// modified in the same change set.
func (i DocumentImpact) Stale() bool {
	return len(i.MatchedPaths) > 0 && !i.SelfChanged
}

// ChangeSet is the change detector's output for one base reference.
// Documents without declared Paths patterns never appear in Impacts;
// undeclared scope cannot be checked.
type ChangeSet struct {
	// Base is the version-control reference the working tree was compared
	// against.
	Base string `json:"base"`

	// Files are the changed source paths.
	Files []ChangedFile `json:"files"`

	// Impacts are the per-document impact summaries, in document order.
	Impacts []DocumentImpact `json:"impacts,omitempty"`
}

// StaleDocuments returns the paths of impacted documents that were not
// themselves modified.
func (c *ChangeSet) StaleDocuments() []string {
	var stale []string
	for _, i := range c.Impacts {
		if i.Stale() {
			stale = append(stale, i.Document)
		}
	}
	return stale
}

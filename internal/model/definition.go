package model

// DefinitionScope bounds where a defined term applies
type DefinitionScope string

const (
	ScopeDocument DefinitionScope = "document"
	ScopeSection  DefinitionScope = "section"
)

// Definition is a defined-term declaration. A term has at most one
// active definition per scope; a later redefinition in the same scope
// supersedes the earlier one. Superseded entries are retained for
// audit and carry an explicit link, they are never deleted.
type Definition struct {
	Term         string          `json:"term"` // case-normalized (lower)
	Text         string          `json:"text"`
	ClauseID     string          `json:"clause_id"`
	Scope        DefinitionScope `json:"scope"`
	SectionPath  string          `json:"section_path,omitempty"`  // set when Scope == section
	Position     int             `json:"position"`                // byte offset of the declaration
	SupersededBy string          `json:"superseded_by,omitempty"` // clause id of the superseding declaration
}

// Active reports whether this definition is the one currently in
// effect for its (term, scope) key.
func (d Definition) Active() bool { return d.SupersededBy == "" }

// Reference is a weak link recording that a clause uses a defined
// term. Lookup-only: it does not own either side.
type Reference struct {
	ClauseID string          `json:"clause_id"`
	Term     string          `json:"term"`
	Scope    DefinitionScope `json:"scope"` // scope of the definition that resolved the usage
}

// UndefinedTerm records a quoted term used in a clause with no
// definition anywhere in the document. Surfaced to the ambiguity
// detector rather than silently resolved.
type UndefinedTerm struct {
	ClauseID string `json:"clause_id"`
	Term     string `json:"term"`
}

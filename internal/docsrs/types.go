package docsrs

// TypeKind classifies a documented symbol.
type TypeKind string

const (
	KindStruct   TypeKind = "struct"
	KindEnum     TypeKind = "enum"
	KindTrait    TypeKind = "trait"
	KindFunction TypeKind = "function"
	KindMacro    TypeKind = "macro"
	KindTypedef  TypeKind = "type"
	KindModule   TypeKind = "module"
	KindOther    TypeKind = "other"
)

// CrateInfo is one registry search hit. Name and Version are always
// populated after normalization.
type CrateInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// CrateSearchResult is one page of a crates.io search.
type CrateSearchResult struct {
	Crates []CrateInfo `json:"crates"`
	Total  int         `json:"total"`
}

// CrateVersion is one published version of a crate.
type CrateVersion struct {
	Version     string `json:"version"`
	Yanked      bool   `json:"yanked"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// CrateDetails merges crate metadata with its full version list.
type CrateDetails struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Downloads     int            `json:"downloads"`
	Homepage      string         `json:"homepage,omitempty"`
	Repository    string         `json:"repository,omitempty"`
	Documentation string         `json:"documentation,omitempty"`
	Versions      []CrateVersion `json:"versions"`
}

// FeatureFlag is one cargo feature of a crate.
type FeatureFlag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// RustType describes one documented symbol from a docs.rs item page.
// DocURL is always populated; it is derived from crate, version, and path
// independent of whether extraction succeeded.
type RustType struct {
	Name        string   `json:"name"`
	Kind        TypeKind `json:"kind"`
	Path        string   `json:"path"`
	Description string   `json:"description,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`
	DocURL      string   `json:"doc_url"`
}

// SymbolDefinition is one hit from the all-symbols index. Name is the final
// segment of the fully qualified path; Path preserves the qualified form.
type SymbolDefinition struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	DocURL string `json:"doc_url,omitempty"`
	Source string `json:"source,omitempty"`
	Docs   string `json:"docs,omitempty"`
}

// SearchOptions are the inputs to a crate search. Query is required; Page
// and PerPage fall back to 1 and 10.
type SearchOptions struct {
	Query   string
	Page    int
	PerPage int
}

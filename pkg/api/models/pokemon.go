package models

// ListPokemonParams holds the optional pagination query parameters for
// GET /api/pokemon. Values are passed through to the upstream unchanged;
// the upstream service enforces its own bounds.
type ListPokemonParams struct {
	Limit  uint32 `query:"limit" default:"20" example:"20"`
	Offset uint32 `query:"offset" default:"0" example:"0"`
}

// Pokemon is the externally visible shape: the numeric id extracted from
// the upstream reference URL plus the name copied verbatim.
type Pokemon struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// NamedResource is a single entry in the upstream list response. URL points
// at the detail resource and carries the numeric id in its last path segment.
type NamedResource struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ResourcePage is the raw upstream list payload. Next and Previous are
// opaque page references; the gateway only decodes them, it never follows
// them.
type ResourcePage struct {
	Count    uint32          `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

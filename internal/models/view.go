package models

// SectionStatus tracks one independently loaded part of the detail screen.
type SectionStatus string

const (
	SectionPending     SectionStatus = "pending"
	SectionReady       SectionStatus = "ready"
	SectionUnavailable SectionStatus = "unavailable"
)

// HomeView is the result of the home-screen aggregation.
type HomeView struct {
	Movies    []MovieSummary `json:"movies"`
	Genres    []Genre        `json:"genres"`
	Featured  []MovieSummary `json:"featured"`
	Backdrops []string       `json:"backdrops"`
}

// DetailView is the result of the detail-screen aggregation.
type DetailView struct {
	Movie           MovieDetail    `json:"movie"`
	TrailerStatus   SectionStatus  `json:"trailer_status"`
	ProvidersStatus SectionStatus  `json:"providers_status"`
	SimilarStatus   SectionStatus  `json:"similar_status"`
	Similar         []MovieSummary `json:"similar"`
}

// Listing is the movie list produced by a search or genre selection.
type Listing struct {
	Movies      []MovieSummary     `json:"movies"`
	Suggestions []SearchSuggestion `json:"suggestions"`
}

package entity

// AnswerSource tells the caller whether an answer was freshly generated or replayed.
type AnswerSource string

const (
	SourceCache AnswerSource = "cache"
	SourceLLM   AnswerSource = "llm"
)

type AnswerResponse struct {
	Answer string       `json:"answer"`
	Source AnswerSource `json:"source"`
}

// CachedAnswer is the value stored in the response cache under the raw query text.
type CachedAnswer struct {
	Answer string `json:"answer"`
}

// Span is one labelled entity returned by the NER collaborator, e.g. {"Google", "ORG"}.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

const (
	LabelOrganization = "ORG"
	LabelDate         = "DATE"
)

// ExtractedEntities holds at most one organization and one year taken from a query.
// A nil field means the entity was not present.
type ExtractedEntities struct {
	Organization *string
	Year         *int
}

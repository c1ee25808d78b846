package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Lexical is the deterministic multi-signal scorer.
	Lexical Mode = "lexical"
	// Semantic ranks by embedding cosine similarity and falls back to Lexical on failure.
	Semantic Mode = "semantic"
)

// Default is used when a request does not name a mode.
const Default = Lexical

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Lexical || m == Semantic
}

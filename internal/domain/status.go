package domain

// RSVP statuses. An attendee holds exactly one at a time; a user with no
// attendee record is considered unset.
const (
	StatusAccepted = "accepted"
	StatusMaybe    = "maybe"
	StatusDeclined = "declined"
)

// VocabularyEntry pairs an RSVP status with the external reaction symbol that
// expresses it.
type VocabularyEntry struct {
	Status string `json:"status"`
	Symbol string `json:"symbol"`
}

// Vocabulary is the ordered status → symbol mapping for one guild. Order is
// display order; the mapping must be invertible (one symbol per status).
type Vocabulary []VocabularyEntry

// DefaultVocabulary is used when a guild has not configured its own mapping.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		{Status: StatusAccepted, Symbol: "✅"},
		{Status: StatusMaybe, Symbol: "❔"},
		{Status: StatusDeclined, Symbol: "❌"},
	}
}

// StatusFor resolves an external symbol to its status. Unknown symbols are
// reported via ok=false and must be ignored by callers, never treated as an
// error.
func (v Vocabulary) StatusFor(symbol string) (string, bool) {
	for _, e := range v {
		if e.Symbol == symbol {
			return e.Status, true
		}
	}
	return "", false
}

// SymbolFor resolves a status to its external symbol.
func (v Vocabulary) SymbolFor(status string) (string, bool) {
	for _, e := range v {
		if e.Status == status {
			return e.Symbol, true
		}
	}
	return "", false
}

// Symbols returns all symbols in vocabulary order.
func (v Vocabulary) Symbols() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Symbol
	}
	return out
}

// SymbolsExcept returns all symbols except the one bound to status. This is
// the retraction set when a user switches status: every other symbol they may
// still hold has to be stripped from the message.
func (v Vocabulary) SymbolsExcept(status string) []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		if e.Status != status {
			out = append(out, e.Symbol)
		}
	}
	return out
}

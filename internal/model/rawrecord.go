package model

// RawRecordKind discriminates the two shapes a statement entry can arrive in.
type RawRecordKind string

// Raw record kinds.
const (
	// RawRecordLine is a whitespace-delimited line from a manually dumped
	// statement: [date, card, concept tokens..., amount].
	RawRecordLine RawRecordKind = "LINE"
	// RawRecordStructured carries explicit fields, as produced by the AI
	// extraction service.
	RawRecordStructured RawRecordKind = "STRUCTURED"
)

// RawRecord is a single not-yet-normalized statement entry. Exactly one of
// the two shapes is populated, according to Kind.
type RawRecord struct {
	Kind RawRecordKind

	// Line is set when Kind == RawRecordLine.
	Line string

	// Date, Concept and Amount are set when Kind == RawRecordStructured.
	// Amount keeps the source's locale formatting and sign placement.
	Date    string
	Concept string
	Amount  string
}

// NewLineRecord wraps a raw statement line.
func NewLineRecord(line string) RawRecord {
	return RawRecord{Kind: RawRecordLine, Line: line}
}

// NewStructuredRecord wraps an already-segmented record.
func NewStructuredRecord(date, concept, amount string) RawRecord {
	return RawRecord{
		Kind:    RawRecordStructured,
		Date:    date,
		Concept: concept,
		Amount:  amount,
	}
}

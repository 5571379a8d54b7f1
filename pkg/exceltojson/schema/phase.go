package schema

// Phase is the extraction state for the row currently being read.
type Phase int

const (
	// TypeParsing reads the column type tags from the first row.
	TypeParsing Phase = iota
	// MemberNameParsing reads the member names from the second row.
	MemberNameParsing
	// DataParsing stores every remaining cell into the data matrix.
	DataParsing
)

func (p Phase) String() string {
	switch p {
	case TypeParsing:
		return "type"
	case MemberNameParsing:
		return "member"
	case DataParsing:
		return "data"
	default:
		return "unknown"
	}
}

// Next returns the phase that follows a cell at col. The phase only
// advances on the last column of a row, and DataParsing is terminal.
func (p Phase) Next(col, lastCol int) Phase {
	if col != lastCol {
		return p
	}
	switch p {
	case TypeParsing:
		return MemberNameParsing
	case MemberNameParsing:
		return DataParsing
	default:
		return DataParsing
	}
}

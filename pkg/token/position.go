package token

// Position represents a location in an expression.
// Expressions are single-line, so Column is the only coordinate shown to users.
type Position struct {
	Column int // 1-based rune column
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (column > 0).
func (p Position) IsValid() bool {
	return p.Column > 0
}

// Span represents a range in an expression. End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Width returns the number of columns the span covers, at least 1.
func (s Span) Width() int {
	if w := s.End.Column - s.Start.Column; w > 0 {
		return w
	}
	return 1
}

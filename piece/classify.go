package piece

import "github.com/sourcekit-bridge/xlangrename/snapshot"

// BackendRange is the four-coordinate payload the Swift backend reports
// for one piece: 1-based UTF-8 start/end line and column, a kind
// identifier, and an optional parameter index (spec §4.2).
type BackendRange struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
	Kind                   Kind
	ParameterIndex         *int // nil when the piece has no parameter index
}

// Classify converts one backend-reported piece into a Piece, resolving
// its UTF-8 coordinates against snap's line table.
//
// It returns (Piece{}, false) when the coordinates cannot be located in
// the snapshot or the kind identifier is outside the closed set — such
// pieces are silently dropped by the caller (spec §4.4), not treated as
// errors.
func Classify(snap *snapshot.Mapper, br BackendRange) (Piece, bool) {
	if !br.Kind.IsValid() {
		return Piece{}, false
	}
	start, err := snap.LineCol8ToOffset(br.StartLine, br.StartColumn)
	if err != nil {
		return Piece{}, false
	}
	end, err := snap.LineCol8ToOffset(br.EndLine, br.EndColumn)
	if err != nil {
		return Piece{}, false
	}
	if end < start {
		return Piece{}, false
	}
	p := Piece{
		Range: Range{Start: Offset(start), End: Offset(end)},
		Kind:  br.Kind,
	}
	if br.ParameterIndex != nil {
		p.HasParameterIndex = true
		p.ParameterIndex = *br.ParameterIndex
	}
	return p, true
}

// ContextID is the backend's wire identifier for a NameContext.
type ContextID string

// Backend context identifiers, per spec §4.2's classifyContext and the
// seven-value NameContext enum in §3.
const (
	ContextUnmatched     ContextID = "unmatched"
	ContextMismatch      ContextID = "mismatch"
	ContextActiveCode    ContextID = "activecode"
	ContextInactiveCode  ContextID = "inactivecode"
	ContextStringLiteral ContextID = "stringliteral"
	ContextSelector      ContextID = "selector"
	ContextComment       ContextID = "comment"
)

var contextByID = map[ContextID]NameContext{
	ContextUnmatched:     Unmatched,
	ContextMismatch:      Mismatch,
	ContextActiveCode:    ActiveCode,
	ContextInactiveCode:  InactiveCode,
	ContextStringLiteral: StringLiteral,
	ContextSelector:      Selector,
	ContextComment:       Comment,
}

// ClassifyContext maps a backend context identifier to the NameContext
// enum. It returns (0, false) for an identifier outside the closed set.
func ClassifyContext(id ContextID) (NameContext, bool) {
	c, ok := contextByID[id]
	return c, ok
}

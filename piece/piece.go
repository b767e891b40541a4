// Package piece defines the closed taxonomy of syntactic rename pieces
// that a compound-name occurrence decomposes into, and the contexts in
// which an occurrence may or may not be renamed.
package piece

// Kind is the closed set of syntactic roles a Piece can play within one
// occurrence of a compound name.
type Kind int

const (
	// BaseName is the occurrence's base name.
	BaseName Kind = iota
	// KeywordBaseName is a non-renameable base name, e.g. "init", "subscript".
	KeywordBaseName
	// ParameterName is a declaration's internal (parameter) name.
	ParameterName
	// NonCollapsibleParameterName is an internal name that must never
	// collapse with the external label even when textually identical.
	NonCollapsibleParameterName
	// DeclArgumentLabel is the external label written at a declaration.
	DeclArgumentLabel
	// CallArgumentLabel is the external label written at a call site.
	CallArgumentLabel
	// CallArgumentColon is the ':' and following space after a call-site
	// label.
	CallArgumentColon
	// CallArgumentCombined is an empty range positioned at an unnamed
	// call argument, used as an insertion point for a new label.
	CallArgumentCombined
	// SelectorArgumentLabel is a label inside a #selector-style compound
	// reference.
	SelectorArgumentLabel
)

func (k Kind) String() string {
	switch k {
	case BaseName:
		return "BaseName"
	case KeywordBaseName:
		return "KeywordBaseName"
	case ParameterName:
		return "ParameterName"
	case NonCollapsibleParameterName:
		return "NonCollapsibleParameterName"
	case DeclArgumentLabel:
		return "DeclArgumentLabel"
	case CallArgumentLabel:
		return "CallArgumentLabel"
	case CallArgumentColon:
		return "CallArgumentColon"
	case CallArgumentCombined:
		return "CallArgumentCombined"
	case SelectorArgumentLabel:
		return "SelectorArgumentLabel"
	default:
		return "Kind(?)"
	}
}

// validKinds is used by Classify to reject unrecognized backend kind
// identifiers without panicking on an out-of-range int.
var validKinds = map[Kind]bool{
	BaseName: true, KeywordBaseName: true, ParameterName: true,
	NonCollapsibleParameterName: true, DeclArgumentLabel: true,
	CallArgumentLabel: true, CallArgumentColon: true,
	CallArgumentCombined: true, SelectorArgumentLabel: true,
}

// IsValid reports whether k is one of the closed set of known kinds.
func (k Kind) IsValid() bool { return validKinds[k] }

// NameContext classifies the surrounding code of one occurrence of a
// compound name, determining whether it participates in renaming at all.
type NameContext int

const (
	// Unmatched means the backend could not associate this location with
	// a name occurrence.
	Unmatched NameContext = iota
	// Mismatch means the occurrence's shape does not match the name being
	// renamed (e.g. a different overload).
	Mismatch
	// ActiveCode is ordinary, compiled source.
	ActiveCode
	// InactiveCode is source excluded by a conditional compilation block.
	// No current backend emits this value; see spec §9 Open Question (c).
	InactiveCode
	// StringLiteral occurrences inside string literals are never renamed.
	StringLiteral
	// Selector is a #selector(...)-style Objective-C selector reference.
	Selector
	// Comment occurrences inside comments are never renamed.
	Comment
)

func (c NameContext) String() string {
	switch c {
	case Unmatched:
		return "Unmatched"
	case Mismatch:
		return "Mismatch"
	case ActiveCode:
		return "ActiveCode"
	case InactiveCode:
		return "InactiveCode"
	case StringLiteral:
		return "StringLiteral"
	case Selector:
		return "Selector"
	case Comment:
		return "Comment"
	default:
		return "NameContext(?)"
	}
}

// IsRenameable reports whether occurrences with this context may be
// renamed. Only ActiveCode, InactiveCode, and Selector are renameable;
// see spec §3 "Edit policy".
func (c NameContext) IsRenameable() bool {
	switch c {
	case ActiveCode, InactiveCode, Selector:
		return true
	default:
		return false
	}
}

var validContexts = map[NameContext]bool{
	Unmatched: true, Mismatch: true, ActiveCode: true, InactiveCode: true,
	StringLiteral: true, Selector: true, Comment: true,
}

// IsValid reports whether c is one of the closed set of known contexts.
func (c NameContext) IsValid() bool { return validContexts[c] }

// Offset is a byte offset into a snapshot's text.
type Offset int

// Range is a half-open [Start, End) byte-offset interval.
type Range struct {
	Start, End Offset
}

// Empty reports whether r denotes an insertion point rather than a span.
func (r Range) Empty() bool { return r.Start == r.End }

// A Piece is one contiguous range of one occurrence, classified by its
// role. ParameterIndex is the zero-based position within the parameter
// list of the name being renamed; it is meaningless (and ignored) for
// base-name pieces.
type Piece struct {
	Range             Range
	Kind              Kind
	ParameterIndex    int // valid only if HasParameterIndex
	HasParameterIndex bool
}

// A CategorizedName is the decomposition of one occurrence of a compound
// name into its constituent Pieces, together with the NameContext that
// determines whether it is renamed at all.
type CategorizedName struct {
	Pieces  []Piece
	Context NameContext
}

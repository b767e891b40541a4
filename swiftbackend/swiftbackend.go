// Package swiftbackend defines the Swift backend's wire contracts (spec
// §6): name translation and find-syntactic-rename-ranges requests. The
// backend itself is an external collaborator, out of scope; this
// package only defines the request/response shapes and the Client
// interface the rest of the engine depends on.
package swiftbackend

import (
	"context"

	"github.com/sourcekit-bridge/xlangrename/piece"
)

// NameKind selects which side of the bridge a TranslateRequest targets.
type NameKind int

const (
	// Swift requests translation of a Swift-spelled name into its
	// Objective-C selector.
	Swift NameKind = iota
	// ObjectiveC requests translation of an Objective-C selector (or
	// plain name) into its Swift spelling.
	ObjectiveC
)

// TranslateRequest is the Swift backend's name-translation request (spec
// §6). Exactly one of (BaseName, ArgNames) or SelectorPieces is
// populated, matching NameKind and the translation direction (spec
// §4.3).
type TranslateRequest struct {
	SourceFile     string
	CompilerArgs   []string
	Offset         int
	NameKind       NameKind
	BaseName       string
	ArgNames       []string
	SelectorPieces []string
}

// TranslateResponse is the backend's reply. For a Swift→ObjC
// translation, IsZeroArgSelector and SelectorPieces are populated; for an
// ObjC→Swift one, BaseName and ArgNames are.
type TranslateResponse struct {
	IsZeroArgSelector bool
	SelectorPieces    []string
	BaseName          string
	ArgNames          []string
}

// A Location is a 1-based UTF-8 (line, column) pair, the wire coordinate
// format at the Swift backend boundary.
type Location struct {
	Line, Column int
}

// LocationGroup is one element of a find-syntactic-rename-ranges
// request's renamelocations list: the positions sharing one old name.
type LocationGroup struct {
	Locations []Location
	Name      string
}

// SyntacticRangesRequest is the find-syntactic-rename-ranges request
// (spec §4.4/§6): source text (this request is syntactic and does not
// consult the backend's own in-memory snapshot) plus the grouped rename
// locations.
type SyntacticRangesRequest struct {
	SourceFile      string
	SourceText      string
	RenameLocations []LocationGroup
}

// CategorizedRange is one element of the response's categorizedranges
// list: a context category and the piece ranges reported under it.
type CategorizedRange struct {
	Category piece.ContextID
	Ranges   []piece.BackendRange
}

// SyntacticRangesResponse is the backend's reply to a
// find-syntactic-rename-ranges request.
type SyntacticRangesResponse struct {
	CategorizedRanges []CategorizedRange
}

// Client is the subset of the Swift backend the rename engine depends
// on (spec §1: "the Swift backend... treated as an opaque service with
// a defined request/response contract"). A real implementation forwards
// to the running sourcekitd-backed process; this module depends only on
// the interface.
type Client interface {
	TranslateName(ctx context.Context, req TranslateRequest) (TranslateResponse, error)
	FindSyntacticRenameRanges(ctx context.Context, req SyntacticRangesRequest) (SyntacticRangesResponse, error)
}

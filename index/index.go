// Package index defines the symbol-index contract (spec §6): an
// external collaborator, interfaced only. It answers two questions the
// orchestrator needs — the occurrences of a USR filtered by role, and
// which language owns a given path — and carries the small value types
// (RenameLocation, Usage, Role) that flow from index queries into the
// rest of the engine.
package index

import (
	"context"

	"github.com/sourcekit-bridge/xlangrename/snapshot"
)

// Role is a bitmask of the index's occurrence roles for one location.
type Role int

const (
	RoleDeclaration Role = 1 << iota
	RoleDefinition
	RoleCall
	RoleReference
)

// Has reports whether r includes flag.
func (r Role) Has(flag Role) bool { return r&flag != 0 }

// Usage classifies one RenameLocation by how the symbol is used there,
// derived from the index's role bitmask (spec §3).
type Usage int

const (
	Reference Usage = iota
	Definition
	Call
)

func (u Usage) String() string {
	switch u {
	case Definition:
		return "Definition"
	case Call:
		return "Call"
	default:
		return "Reference"
	}
}

// UsageForRoles derives a Usage from an occurrence's role bitmask:
// Definition if the roles include Definition or Declaration, else Call
// if they include Call, else Reference.
func UsageForRoles(roles Role) Usage {
	if roles.Has(RoleDefinition) || roles.Has(RoleDeclaration) {
		return Definition
	}
	if roles.Has(RoleCall) {
		return Call
	}
	return Reference
}

// A RenameLocation identifies one occurrence of a symbol in one file:
// a 1-based UTF-8 line/column pair (the backend wire format) plus how
// the symbol is used there.
type RenameLocation struct {
	Line       int
	UTF8Column int
	Usage      Usage
}

// SymbolKind is the subset of symbol kinds the engine's
// isObjectiveCSelector rule distinguishes (spec §4.6 step 4).
type SymbolKind int

const (
	SymbolKindOther SymbolKind = iota
	InstanceMethod
	ClassMethod
)

// IsMethod reports whether k is an instance or class method.
func (k SymbolKind) IsMethod() bool { return k == InstanceMethod || k == ClassMethod }

// Language is the index's own, finer-grained notion of a symbol's
// language: unlike snapshot.Language's two-bucket Swift/Clang split
// (which is all TranslatableName needs to route a translation request),
// the index must be able to tell Objective-C apart from C/C++ within
// the Clang family, since isObjectiveCSelector depends on exactly that
// distinction (spec §4.6 step 4: "language is Objective-C").
type Language int

const (
	LanguageUnknown Language = iota
	LanguageSwift
	LanguageObjectiveC
	LanguageC
	LanguageCPlusPlus
)

// Family reduces l to the two-bucket split TranslatableName operates
// over.
func (l Language) Family() snapshot.Language {
	switch l {
	case LanguageSwift:
		return snapshot.Swift
	case LanguageObjectiveC, LanguageC, LanguageCPlusPlus:
		return snapshot.Clang
	default:
		return snapshot.Unknown
	}
}

// Symbol is the index's description of the symbol at an occurrence.
type Symbol struct {
	Name     string
	Language Language
	Kind     SymbolKind
}

// Location is a path-qualified 1-based UTF-8 (line, column) position, as
// reported by the index (which is path-addressed, unlike a Snapshot
// which is URI-addressed).
type Location struct {
	Path       string
	Line       int
	UTF8Column int
}

// An Occurrence is one row of an index query result.
type Occurrence struct {
	Symbol   Symbol
	Location Location
	Roles    Role
}

// Index is the symbol-index contract (spec §6): "answers occurrences of
// a USR by role; symbol-provider-for-path". This module depends only on
// the interface — a real index is backed by an external database the
// document manager and both language backends share.
type Index interface {
	// Occurrences returns every occurrence of usr whose roles intersect
	// the given mask.
	Occurrences(ctx context.Context, usr string, roles Role) ([]Occurrence, error)

	// SymbolProvider reports which language owns path, or false if the
	// index has no provider for it (spec scenario 5: an unresolvable
	// path is skipped, not an error).
	SymbolProvider(ctx context.Context, path string) (snapshot.Language, bool)
}

// Package rename implements the rename orchestrator (C6, spec §4.6) and
// the prepare-rename resolver (C7, spec §4.7): the entry points that
// drive local rename, discover workspace occurrences through the
// symbol index, dispatch per-file work concurrently, and merge edits
// into a single workspace edit.
package rename

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/internal/fanout"
	"github.com/sourcekit-bridge/xlangrename/internal/logging"
	"github.com/sourcekit-bridge/xlangrename/langservice"
	"github.com/sourcekit-bridge/xlangrename/piece"
	"github.com/sourcekit-bridge/xlangrename/rerrors"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/xlate"
)

// WorkspaceResolver answers whether a URI belongs to an open workspace
// (spec §4.6 step 1). Workspace/project discovery itself is out of
// scope (spec §1); the orchestrator depends only on this narrow
// capability.
type WorkspaceResolver interface {
	IsOpen(ctx context.Context, uri protocol.DocumentURI) bool
}

// ServiceResolver maps a request URI to the language service
// responsible for it (spec §4.6 step 2), and separately maps a bare
// language to its service, for step 8's per-file routing, which the
// spec grounds in the index's symbol-provider-for-path rather than in
// any document-level lookup.
type ServiceResolver interface {
	ServiceForURI(ctx context.Context, uri protocol.DocumentURI) (langservice.Service, bool)
	ServiceForLanguage(ctx context.Context, lang snapshot.Language) (langservice.Service, bool)
}

// Request is a rename request (spec §6).
type Request struct {
	URI      protocol.DocumentURI
	Position protocol.Position
	NewName  string
}

// Orchestrator implements C6. Its fields are the resolved collaborators
// a caller constructs it with (spec §10: no config package — callers
// take already-resolved dependencies, the shape gopls's own
// golang.Rename takes an already-resolved *cache.Snapshot).
type Orchestrator struct {
	Workspaces WorkspaceResolver
	Services   ServiceResolver
	Source     snapshot.Source
	Index      index.Index // nil is valid: global rename degrades to local-only
}

// NewOrchestrator constructs an Orchestrator over its collaborators.
func NewOrchestrator(workspaces WorkspaceResolver, services ServiceResolver, source snapshot.Source, idx index.Index) *Orchestrator {
	return &Orchestrator{Workspaces: workspaces, Services: services, Source: source, Index: idx}
}

// Rename implements spec §4.6's ten-step operation. A nil, nil return
// means the primary language service declined to handle the position
// (no renameable symbol there); a non-nil error is always one of the
// hard-failure kinds in spec §7.
func (o *Orchestrator) Rename(ctx context.Context, req Request) (*protocol.WorkspaceEdit, error) {
	ctx, done := logging.Span(ctx, "rename", zap.String("uri", string(req.URI)), zap.String("newName", req.NewName))
	defer done()

	// Step 1.
	if !o.Workspaces.IsOpen(ctx, req.URI) {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrWorkspaceNotOpen, req.URI)
	}

	// Step 2.
	service, ok := o.Services.ServiceForURI(ctx, req.URI)
	if !ok {
		return nil, nil
	}

	primarySnap, err := o.Source.Snapshot(ctx, req.URI)
	if err != nil {
		return nil, fmt.Errorf("load primary snapshot: %w", err)
	}

	// Step 3.
	localEdits, usr, err := service.Rename(ctx, primarySnap, req.Position, req.NewName)
	if err != nil {
		return nil, fmt.Errorf("local rename: %w", err)
	}
	if usr == "" || o.Index == nil {
		return &localEdits, nil
	}

	// Step 4: unique-definition lookup.
	oldTranslatable, definitionLanguage, err := o.resolveDefinition(ctx, usr)
	if err != nil {
		if rerrors.IsCancelled(err) {
			return nil, err
		}
		logging.Skip(ctx, "global rename refused", zap.String("usr", usr), zap.Error(err))
		return &localEdits, nil
	}

	// Step 5.
	newTranslatable := oldTranslatable.WithName(req.NewName)

	// Step 6.
	changes := map[protocol.DocumentURI][]protocol.TextEdit{}
	if definitionLanguage == primarySnap.Language {
		changes = localEdits.Changes
		if changes == nil {
			changes = map[protocol.DocumentURI][]protocol.TextEdit{}
		}
	}

	// Step 7.
	occurrences, err := o.Index.Occurrences(ctx, usr, index.RoleDeclaration|index.RoleDefinition|index.RoleCall|index.RoleReference)
	if err != nil {
		if rerrors.IsCancelled(err) {
			return nil, err
		}
		logging.Skip(ctx, "occurrence lookup failed; returning local edits only", zap.Error(err))
		return &protocol.WorkspaceEdit{Changes: changes}, nil
	}
	byFile := groupByFile(occurrences)

	type fileWork struct {
		uri       protocol.DocumentURI
		locations []index.RenameLocation
	}
	var pending []fileWork
	for path, locations := range byFile {
		uri := uriForPath(path)
		if _, already := changes[uri]; already {
			continue
		}
		pending = append(pending, fileWork{uri: uri, locations: locations})
	}

	// Step 8.
	type fileResult struct {
		uri   protocol.DocumentURI
		edits []protocol.TextEdit
	}
	results, err := fanout.MapTolerant(ctx, pending, func(ctx context.Context, w fileWork) (fileResult, error) {
		edits, err := o.editsForFile(ctx, w.uri, w.locations, oldTranslatable, newTranslatable)
		if err != nil {
			return fileResult{}, err
		}
		return fileResult{uri: w.uri, edits: edits}, nil
	}, func(w fileWork, err error) {
		logging.Skip(ctx, "per-file editsToRename failed", zap.String("uri", string(w.uri)), zap.Error(err))
	})
	if err != nil {
		return nil, err
	}

	// Step 9.
	for _, r := range results {
		if len(r.edits) == 0 {
			continue
		}
		if _, exists := changes[r.uri]; exists {
			panic(fmt.Sprintf("rename: duplicate edits computed for %s", r.uri))
		}
		changes[r.uri] = r.edits
	}

	// Step 10.
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}

// resolveDefinition looks up the unique definition occurrence of usr
// and builds a TranslatableName over its definition site (spec §4.6
// step 4).
func (o *Orchestrator) resolveDefinition(ctx context.Context, usr string) (*xlate.TranslatableName, snapshot.Language, error) {
	occurrences, err := o.Index.Occurrences(ctx, usr, index.RoleDefinition|index.RoleDeclaration)
	if err != nil {
		return nil, snapshot.Unknown, fmt.Errorf("definition lookup: %w", err)
	}
	if len(occurrences) != 1 {
		return nil, snapshot.Unknown, fmt.Errorf("%d definitions for usr %q, want exactly 1", len(occurrences), usr)
	}
	def := occurrences[0]

	definitionURI := uriForPath(def.Location.Path)
	definitionLanguage := def.Symbol.Language.Family()
	isObjectiveCSelector := def.Symbol.Language == index.LanguageObjectiveC && def.Symbol.Kind.IsMethod()

	defSnap, err := o.Source.Snapshot(ctx, definitionURI)
	if err != nil {
		return nil, snapshot.Unknown, fmt.Errorf("load defining snapshot: %w", err)
	}
	offset, err := defSnap.Mapper.LineCol8ToOffset(def.Location.Line, def.Location.UTF8Column)
	if err != nil {
		return nil, snapshot.Unknown, &rerrors.CannotComputeOffsetError{Position: def.Location, Err: err}
	}

	return xlate.New(def.Symbol.Name, definitionURI, piece.Offset(offset), definitionLanguage, isObjectiveCSelector), definitionLanguage, nil
}

// editsForFile resolves a file's language via the index's
// symbol-provider-for-path and routes to that language's service (spec
// §4.6 step 8: "resolve its language via the index's
// symbol-provider-for-path ... for service routing") — the index is the
// single source of truth for per-file routing here, not the file's own
// stored language, which could disagree with what the index reports. An
// unresolvable symbol provider is a recoverable, per-file failure (spec
// scenario 5): it returns an error so the caller's fanout.MapTolerant can
// log and skip the file, not a hard failure.
func (o *Orchestrator) editsForFile(ctx context.Context, uri protocol.DocumentURI, locations []index.RenameLocation, oldName, newName *xlate.TranslatableName) ([]protocol.TextEdit, error) {
	lang, ok := o.Index.SymbolProvider(ctx, pathForURI(uri))
	if !ok || lang == snapshot.Unknown {
		return nil, fmt.Errorf("no symbol provider for %s", uri)
	}

	service, ok := o.Services.ServiceForLanguage(ctx, lang)
	if !ok {
		return nil, fmt.Errorf("no language service for %s (language %s)", uri, lang)
	}

	snap, err := o.Source.Snapshot(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", uri, err)
	}

	return service.EditsToRename(ctx, locations, snap, oldName, newName)
}

func groupByFile(occurrences []index.Occurrence) map[string][]index.RenameLocation {
	byFile := map[string][]index.RenameLocation{}
	for _, occ := range occurrences {
		byFile[occ.Location.Path] = append(byFile[occ.Location.Path], index.RenameLocation{
			Line:       occ.Location.Line,
			UTF8Column: occ.Location.UTF8Column,
			Usage:      index.UsageForRoles(occ.Roles),
		})
	}
	return byFile
}

func uriForPath(path string) protocol.DocumentURI {
	if strings.Contains(path, "://") {
		return protocol.DocumentURI(path)
	}
	return protocol.DocumentURI("file://" + path)
}

func pathForURI(uri protocol.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}

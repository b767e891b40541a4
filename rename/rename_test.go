package rename_test

import (
	"context"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/internal/testlang"
	"github.com/sourcekit-bridge/xlangrename/langservice"
	"github.com/sourcekit-bridge/xlangrename/piece"
	"github.com/sourcekit-bridge/xlangrename/rename"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
)

const (
	pathA = "/workspace/A.swift"
	pathB = "/workspace/B.swift"
	uriA  = protocol.DocumentURI("file://" + pathA)
	uriB  = protocol.DocumentURI("file://" + pathB)
)

// TestRenameNoIndexReturnsLocalEditsOnly exercises spec scenario where a
// primary-file-only rename is requested and no symbol index is wired: the
// orchestrator must return the local service's own edits untouched,
// never attempting workspace-wide fan-out (spec §4.6 step 3).
func TestRenameNoIndexReturnsLocalEditsOnly(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")

	wantEdit := protocol.TextEdit{Range: protocol.Range{
		Start: protocol.Position{Line: 0, Character: 5},
		End:   protocol.Position{Line: 0, Character: 8},
	}, NewText: "bar"}
	local := &testlang.LocalRenamer{
		RenameEdits: protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
			uriA: {wantEdit},
		}},
		RenameUSR: "s:foo",
	}
	swiftService := langservice.NewSwiftService(&testlang.SwiftClient{}, local)
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	orch := rename.NewOrchestrator(workspace, services, source, nil)
	got, err := orch.Rename(context.Background(), rename.Request{URI: uriA, Position: protocol.Position{Line: 0, Character: 5}, NewName: "bar"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if len(got.Changes) != 1 || len(got.Changes[uriA]) != 1 || got.Changes[uriA][0] != wantEdit {
		t.Errorf("Changes = %+v, want only %s: [%v]", got.Changes, uriA, wantEdit)
	}
}

// TestRenameFansOutAcrossFiles exercises the workspace-wide path (spec
// §4.6 steps 4-10): a definition in one Swift file and a call in another
// both get renamed, with the second file's edits computed via the
// syntactic-piece pipeline (C4/C5) rather than the local renamer.
func TestRenameFansOutAcrossFiles(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")
	source.Add(uriB, snapshot.Swift, "foo()")

	localEdit := protocol.TextEdit{Range: protocol.Range{
		Start: protocol.Position{Line: 0, Character: 5},
		End:   protocol.Position{Line: 0, Character: 8},
	}, NewText: "bar"}
	local := &testlang.LocalRenamer{
		RenameEdits: protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
			uriA: {localEdit},
		}},
		RenameUSR: "s:foo",
	}
	swiftClient := &testlang.SwiftClient{
		Ranges: func(ctx context.Context, req swiftbackend.SyntacticRangesRequest) (swiftbackend.SyntacticRangesResponse, error) {
			endCol := 4 // "foo" spans columns 1-3, half-open end column 4
			return swiftbackend.SyntacticRangesResponse{CategorizedRanges: []swiftbackend.CategorizedRange{
				{
					Category: piece.ContextActiveCode,
					Ranges: []piece.BackendRange{
						{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: endCol, Kind: piece.BaseName},
					},
				},
			}}, nil
		},
	}
	swiftService := langservice.NewSwiftService(swiftClient, local)
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	idx := testlang.NewIndex()
	idx.LanguageByPath[pathA] = snapshot.Swift
	idx.LanguageByPath[pathB] = snapshot.Swift
	idx.OccurrencesByUSR["s:foo"] = []index.Occurrence{
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift, Kind: index.SymbolKindOther},
			Location: index.Location{Path: pathA, Line: 1, UTF8Column: 6},
			Roles:    index.RoleDefinition | index.RoleDeclaration,
		},
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift, Kind: index.SymbolKindOther},
			Location: index.Location{Path: pathB, Line: 1, UTF8Column: 1},
			Roles:    index.RoleCall,
		},
	}

	orch := rename.NewOrchestrator(workspace, services, source, idx)
	got, err := orch.Rename(context.Background(), rename.Request{URI: uriA, Position: protocol.Position{Line: 0, Character: 5}, NewName: "bar"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if len(got.Changes[uriA]) != 1 || got.Changes[uriA][0] != localEdit {
		t.Errorf("Changes[A] = %v, want [%v]", got.Changes[uriA], localEdit)
	}
	wantB := protocol.TextEdit{Range: protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 3},
	}, NewText: "bar"}
	if len(got.Changes[uriB]) != 1 || got.Changes[uriB][0] != wantB {
		t.Errorf("Changes[B] = %v, want [%v]", got.Changes[uriB], wantB)
	}
}

// TestRenameUnresolvableSymbolProviderSkipsFileNotWholeRequest exercises
// spec scenario 5: a file the index has no symbol provider for is
// skipped, but the rename as a whole still succeeds with the edits it
// could compute.
func TestRenameUnresolvableSymbolProviderSkipsFileNotWholeRequest(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")
	source.Add(uriB, snapshot.Swift, "foo()")

	local := &testlang.LocalRenamer{
		RenameEdits: protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{}},
		RenameUSR:   "s:foo",
	}
	swiftService := langservice.NewSwiftService(&testlang.SwiftClient{}, local)
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	idx := testlang.NewIndex()
	idx.LanguageByPath[pathA] = snapshot.Swift
	// pathB intentionally has no provider registered.
	idx.OccurrencesByUSR["s:foo"] = []index.Occurrence{
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift},
			Location: index.Location{Path: pathA, Line: 1, UTF8Column: 6},
			Roles:    index.RoleDefinition | index.RoleDeclaration,
		},
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift},
			Location: index.Location{Path: pathB, Line: 1, UTF8Column: 1},
			Roles:    index.RoleCall,
		},
	}

	orch := rename.NewOrchestrator(workspace, services, source, idx)
	got, err := orch.Rename(context.Background(), rename.Request{URI: uriA, Position: protocol.Position{Line: 0, Character: 5}, NewName: "bar"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, ok := got.Changes[uriB]; ok {
		t.Errorf("Changes contains unresolvable file %s, want it skipped", uriB)
	}
}

// TestRenameRoutesPerFileServiceByIndexLanguageNotDocumentLanguage
// exercises spec §4.6 step 8's explicit routing rule: a file's language
// service is chosen from what the index's SymbolProvider reports for
// that path, not from the file's own stored snapshot.Language. Here the
// two disagree (the snapshot says Clang, the index says Swift); the
// edits must come from the Swift service, proving routing follows the
// index.
func TestRenameRoutesPerFileServiceByIndexLanguageNotDocumentLanguage(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")
	// uriB's own stored language is Clang, but the index reports Swift
	// for this path — the index must win.
	source.Add(uriB, snapshot.Clang, "foo()")

	local := &testlang.LocalRenamer{
		RenameEdits: protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{}},
		RenameUSR:   "s:foo",
	}
	swiftClient := &testlang.SwiftClient{
		Ranges: func(ctx context.Context, req swiftbackend.SyntacticRangesRequest) (swiftbackend.SyntacticRangesResponse, error) {
			return swiftbackend.SyntacticRangesResponse{CategorizedRanges: []swiftbackend.CategorizedRange{
				{
					Category: piece.ContextActiveCode,
					Ranges: []piece.BackendRange{
						{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 4, Kind: piece.BaseName},
					},
				},
			}}, nil
		},
	}
	swiftService := langservice.NewSwiftService(swiftClient, local)
	// No Clang service wired at all: if routing ever fell back to the
	// document's own stored (Clang) language, this would fail with "no
	// language service", not produce an edit.
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	idx := testlang.NewIndex()
	idx.LanguageByPath[pathA] = snapshot.Swift
	idx.LanguageByPath[pathB] = snapshot.Swift
	idx.OccurrencesByUSR["s:foo"] = []index.Occurrence{
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift},
			Location: index.Location{Path: pathA, Line: 1, UTF8Column: 6},
			Roles:    index.RoleDefinition | index.RoleDeclaration,
		},
		{
			Symbol:   index.Symbol{Name: "foo", Language: index.LanguageSwift},
			Location: index.Location{Path: pathB, Line: 1, UTF8Column: 1},
			Roles:    index.RoleCall,
		},
	}

	orch := rename.NewOrchestrator(workspace, services, source, idx)
	got, err := orch.Rename(context.Background(), rename.Request{URI: uriA, Position: protocol.Position{Line: 0, Character: 5}, NewName: "bar"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	wantB := protocol.TextEdit{Range: protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 3},
	}, NewText: "bar"}
	if len(got.Changes[uriB]) != 1 || got.Changes[uriB][0] != wantB {
		t.Errorf("Changes[B] = %v, want [%v] (routed via index language, not document language)", got.Changes[uriB], wantB)
	}
}

// TestRenameWorkspaceNotOpenFails exercises spec §4.6 step 1 / §7's
// ErrWorkspaceNotOpen hard failure.
func TestRenameWorkspaceNotOpenFails(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")
	workspace := testlang.NewWorkspace() // nothing open

	orch := rename.NewOrchestrator(workspace, testlang.NewServices(source, nil, nil), source, nil)
	_, err := orch.Rename(context.Background(), rename.Request{URI: uriA, Position: protocol.Position{}, NewName: "bar"})
	if err == nil {
		t.Fatal("Rename: want error for unopened workspace, got nil")
	}
}

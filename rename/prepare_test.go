package rename_test

import (
	"context"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/internal/testlang"
	"github.com/sourcekit-bridge/xlangrename/langservice"
	"github.com/sourcekit-bridge/xlangrename/rename"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
)

// TestPrepareRenameWithoutIndexUsesServicePlaceholder exercises spec
// §4.7's no-index degrade path: the service's own placeholder passes
// through untranslated.
func TestPrepareRenameWithoutIndexUsesServicePlaceholder(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo() {}")

	local := &testlang.LocalRenamer{
		PrepareResp: langservice.PrepareRenameResponse{
			Range:       protocol.Range{Start: protocol.Position{Line: 0, Character: 5}, End: protocol.Position{Line: 0, Character: 8}},
			Placeholder: "foo",
		},
		PrepareOK: true,
	}
	swiftService := langservice.NewSwiftService(&testlang.SwiftClient{}, local)
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	orch := rename.NewOrchestrator(workspace, services, source, nil)
	resp, ok, err := orch.PrepareRename(context.Background(), rename.PrepareRequest{URI: uriA, Position: protocol.Position{Line: 0, Character: 5}})
	if err != nil {
		t.Fatalf("PrepareRename: %v", err)
	}
	if !ok {
		t.Fatal("PrepareRename: ok = false, want true")
	}
	if resp.Placeholder != "foo" {
		t.Errorf("Placeholder = %q, want %q", resp.Placeholder, "foo")
	}
}

// TestPrepareRenameTranslatesPlaceholderAcrossLanguages exercises the
// cross-language half of spec §4.7: a Clang call site preparing to
// rename a Swift-defined symbol sees the placeholder translated to its
// Clang spelling via C3, not the bare Swift definition name.
func TestPrepareRenameTranslatesPlaceholderAcrossLanguages(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "func foo(bar: Int) {}")
	source.Add(uriB, snapshot.Clang, "[obj fooWithBar:1];")

	swiftLocal := &testlang.LocalRenamer{}
	clangLocal := &testlang.LocalRenamer{
		PrepareResp: langservice.PrepareRenameResponse{
			Range:       protocol.Range{Start: protocol.Position{Line: 0, Character: 5}, End: protocol.Position{Line: 0, Character: 18}},
			Placeholder: "fooWithBar:",
		},
		PrepareOK:    true,
		SymbolDetail: []langservice.SymbolDetail{{USR: "s:foo"}},
	}
	translator := &testlang.SwiftClient{
		Translate: func(ctx context.Context, req swiftbackend.TranslateRequest) (swiftbackend.TranslateResponse, error) {
			return swiftbackend.TranslateResponse{IsZeroArgSelector: false, SelectorPieces: []string{"fooWithBar"}}, nil
		},
	}
	swiftService := langservice.NewSwiftService(translator, swiftLocal)
	clangService := langservice.NewClangService(translator, &testlang.ClangClient{}, clangLocal)
	services := testlang.NewServices(source, swiftService, clangService)
	workspace := testlang.NewWorkspace(uriA, uriB)

	idx := testlang.NewIndex()
	idx.OccurrencesByUSR["s:foo"] = []index.Occurrence{
		{
			Symbol:   index.Symbol{Name: "foo(bar:)", Language: index.LanguageSwift, Kind: index.SymbolKindOther},
			Location: index.Location{Path: pathA, Line: 1, UTF8Column: 6},
			Roles:    index.RoleDefinition | index.RoleDeclaration,
		},
	}

	orch := rename.NewOrchestrator(workspace, services, source, idx)
	resp, ok, err := orch.PrepareRename(context.Background(), rename.PrepareRequest{URI: uriB, Position: protocol.Position{Line: 0, Character: 5}})
	if err != nil {
		t.Fatalf("PrepareRename: %v", err)
	}
	if !ok {
		t.Fatal("PrepareRename: ok = false, want true")
	}
	if resp.Placeholder != "fooWithBar:" {
		t.Errorf("Placeholder = %q, want %q", resp.Placeholder, "fooWithBar:")
	}
}

// TestPrepareRenameDeclinedByServiceReturnsNotOK exercises the "no
// renameable symbol here" path.
func TestPrepareRenameDeclinedByServiceReturnsNotOK(t *testing.T) {
	source := testlang.NewSource()
	source.Add(uriA, snapshot.Swift, "let x = 1")
	local := &testlang.LocalRenamer{PrepareOK: false}
	swiftService := langservice.NewSwiftService(&testlang.SwiftClient{}, local)
	services := testlang.NewServices(source, swiftService, nil)
	workspace := testlang.NewWorkspace(uriA)

	orch := rename.NewOrchestrator(workspace, services, source, nil)
	_, ok, err := orch.PrepareRename(context.Background(), rename.PrepareRequest{URI: uriA, Position: protocol.Position{Line: 0, Character: 4}})
	if err != nil {
		t.Fatalf("PrepareRename: %v", err)
	}
	if ok {
		t.Error("PrepareRename: ok = true, want false")
	}
}

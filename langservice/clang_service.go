package langservice

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/clangbackend"
	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
	"github.com/sourcekit-bridge/xlangrename/xlate"
)

// ClangService is the Clang-family implementation of Service. Name
// translation (C3) always goes through the Swift backend's translation
// request (spec §4.3 — it is the only service that translates names in
// either direction), so ClangService holds a swiftbackend.Client
// alongside the Clang backend it forwards indexed renames to.
type ClangService struct {
	Translator swiftbackend.Client
	Backend    clangbackend.Client
	Local      LocalClangRenamer
}

// NewClangService constructs a ClangService over its collaborators.
func NewClangService(translator swiftbackend.Client, backend clangbackend.Client, local LocalClangRenamer) *ClangService {
	return &ClangService{Translator: translator, Backend: backend, Local: local}
}

func (s *ClangService) Rename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (protocol.WorkspaceEdit, string, error) {
	return s.Local.LocalRename(ctx, snap, position, newName)
}

func (s *ClangService) PrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (PrepareRenameResponse, bool, error) {
	return s.Local.LocalPrepareRename(ctx, snap, position)
}

func (s *ClangService) SymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]SymbolDetail, error) {
	return s.Local.LocalSymbolInfo(ctx, snap, position)
}

// EditsToRename implements spec §4.6's Clang editsToRename bullet:
// translate old and new names to their Clang spelling via C3, then
// forward to the Clang backend's indexed-rename request, returning the
// edits for this URI from the response.
func (s *ClangService) EditsToRename(ctx context.Context, locations []index.RenameLocation, snap *snapshot.Snapshot, oldName, newName *xlate.TranslatableName) ([]protocol.TextEdit, error) {
	oldClangName, err := oldName.ClangName(ctx, s.Translator)
	if err != nil {
		return nil, fmt.Errorf("translate old name to clang: %w", err)
	}
	newClangName, err := newName.ClangName(ctx, s.Translator)
	if err != nil {
		return nil, fmt.Errorf("translate new name to clang: %w", err)
	}

	positions := make(map[protocol.DocumentURI][]clangbackend.Position, 1)
	for _, loc := range locations {
		positions[snap.URI] = append(positions[snap.URI], clangbackend.Position{Line: loc.Line, Column: loc.UTF8Column})
	}

	resp, err := s.Backend.IndexedRename(ctx, clangbackend.IndexedRenameRequest{
		TextDocument: snap.URI,
		OldName:      oldClangName,
		NewName:      newClangName,
		Positions:    positions,
	})
	if err != nil {
		return nil, fmt.Errorf("indexed rename: %w", err)
	}
	return resp.Changes[snap.URI], nil
}

package langservice

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/edits"
	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/names"
	"github.com/sourcekit-bridge/xlangrename/rerrors"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
	"github.com/sourcekit-bridge/xlangrename/xlate"
)

// SwiftService is the Swift-family implementation of Service, wiring
// the Swift backend's name translation and syntactic-range requests
// (C3, C4) through the piece-edit composer (C5).
type SwiftService struct {
	Backend swiftbackend.Client
	Local   LocalSwiftRenamer
}

// NewSwiftService constructs a SwiftService over its collaborators.
func NewSwiftService(backend swiftbackend.Client, local LocalSwiftRenamer) *SwiftService {
	return &SwiftService{Backend: backend, Local: local}
}

func (s *SwiftService) Rename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (protocol.WorkspaceEdit, string, error) {
	return s.Local.LocalRename(ctx, snap, position, newName)
}

func (s *SwiftService) PrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (PrepareRenameResponse, bool, error) {
	return s.Local.LocalPrepareRename(ctx, snap, position)
}

func (s *SwiftService) SymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]SymbolDetail, error) {
	return s.Local.LocalSymbolInfo(ctx, snap, position)
}

// EditsToRename implements spec §4.6's Swift editsToRename bullet: pick
// any one location for name translation (all share a definition),
// translate both names to their Swift spelling, parse both, obtain
// categorized pieces via C4, and flat-map C5 over them.
func (s *SwiftService) EditsToRename(ctx context.Context, locations []index.RenameLocation, snap *snapshot.Snapshot, oldName, newName *xlate.TranslatableName) ([]protocol.TextEdit, error) {
	if len(locations) == 0 {
		return nil, nil
	}
	loc := locations[0]
	offset, err := snap.Mapper.LineCol8ToOffset(loc.Line, loc.UTF8Column)
	if err != nil {
		return nil, &rerrors.CannotComputeOffsetError{Position: loc, Err: err}
	}
	position, err := snap.Mapper.OffsetToPosition(offset)
	if err != nil {
		return nil, &rerrors.CannotComputeOffsetError{Position: loc, Err: err}
	}

	oldSwiftName, err := oldName.SwiftName(ctx, s.Backend, position, snap)
	if err != nil {
		return nil, fmt.Errorf("translate old name to swift: %w", err)
	}
	newSwiftName, err := newName.SwiftName(ctx, s.Backend, position, snap)
	if err != nil {
		return nil, fmt.Errorf("translate new name to swift: %w", err)
	}

	oldCompound := names.Parse(oldSwiftName)
	newCompound := names.Parse(newSwiftName)

	categorized, err := swiftbackend.SyntacticRanges(ctx, s.Backend, snap, locations, oldSwiftName)
	if err != nil {
		return nil, fmt.Errorf("syntactic ranges: %w", err)
	}

	var out []protocol.TextEdit
	for _, cat := range categorized {
		for _, e := range edits.EditsForOccurrence(cat, oldCompound, newCompound, snap) {
			rng, err := snap.Mapper.OffsetRange(int(e.Start), int(e.End))
			if err != nil {
				return nil, fmt.Errorf("edit range: %w", err)
			}
			out = append(out, protocol.TextEdit{Range: rng, NewText: e.New})
		}
	}
	return out, nil
}

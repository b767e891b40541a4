package swiftbackend

import (
	"context"
	"fmt"

	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/piece"
	"github.com/sourcekit-bridge/xlangrename/rerrors"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
)

// SyntacticRanges implements the syntactic range extractor (C4, spec
// §4.4): given a snapshot, the locations sharing one old name, and a
// Swift backend client, it returns the categorized pieces for each
// location, in the order the backend reported them.
//
// Pieces whose coordinates fail snapshot lookup are silently dropped
// (spec §4.4); an unrecognized context fails the whole response with
// rerrors.InternalError.
func SyntacticRanges(ctx context.Context, client Client, snap *snapshot.Snapshot, locations []index.RenameLocation, oldName string) ([]piece.CategorizedName, error) {
	group := LocationGroup{Name: oldName}
	for _, loc := range locations {
		group.Locations = append(group.Locations, Location{Line: loc.Line, Column: loc.UTF8Column})
	}

	req := SyntacticRangesRequest{
		SourceFile:      string(snap.URI),
		SourceText:      string(snap.Text),
		RenameLocations: []LocationGroup{group},
	}
	resp, err := client.FindSyntacticRenameRanges(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("find syntactic rename ranges: %w", err)
	}

	out := make([]piece.CategorizedName, 0, len(resp.CategorizedRanges))
	for _, cr := range resp.CategorizedRanges {
		nameContext, ok := piece.ClassifyContext(cr.Category)
		if !ok {
			return nil, &rerrors.InternalError{Message: fmt.Sprintf("unrecognized rename context %q", cr.Category)}
		}
		var pieces []piece.Piece
		for _, br := range cr.Ranges {
			p, ok := piece.Classify(snap.Mapper, br)
			if !ok {
				continue
			}
			pieces = append(pieces, p)
		}
		out = append(out, piece.CategorizedName{Pieces: pieces, Context: nameContext})
	}
	return out, nil
}

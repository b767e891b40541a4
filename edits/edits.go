// Package edits implements the piece-edit composer (spec §4.5): given the
// categorized pieces of one occurrence and the old/new compound names,
// it produces the text edits for that occurrence.
package edits

import (
	"strings"

	"github.com/sourcekit-bridge/xlangrename/names"
	"github.com/sourcekit-bridge/xlangrename/piece"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
)

// A TextEdit replaces the half-open byte range [Start, End) with New.
type TextEdit struct {
	Start, End piece.Offset
	New        string
}

// EditsForOccurrence produces the text edits for one occurrence (spec
// §4.5), following the exhaustive per-Kind table. Occurrences whose
// NameContext is not renameable (Unmatched, Mismatch, StringLiteral,
// Comment) produce no edits. snap supplies the source text needed by the
// ParameterName "collapse redundant internal name" rule, which compares
// the piece's current text against the new label.
func EditsForOccurrence(cat piece.CategorizedName, oldName, newName names.CompoundName, snap *snapshot.Snapshot) []TextEdit {
	if !cat.Context.IsRenameable() {
		return nil
	}
	var out []TextEdit
	for _, p := range cat.Pieces {
		if e, ok := editForPiece(p, oldName, newName, snap); ok {
			out = append(out, e)
		}
	}
	return out
}

func editForPiece(p piece.Piece, oldName, newName names.CompoundName, snap *snapshot.Snapshot) (TextEdit, bool) {
	replace := func(text string) (TextEdit, bool) {
		return TextEdit{Start: p.Range.Start, End: p.Range.End, New: text}, true
	}
	insert := func(text string) (TextEdit, bool) {
		return TextEdit{Start: p.Range.End, End: p.Range.End, New: text}, true
	}
	none := func() (TextEdit, bool) { return TextEdit{}, false }

	switch p.Kind {
	case piece.BaseName:
		return replace(newName.BaseName)

	case piece.KeywordBaseName:
		return none()

	case piece.NonCollapsibleParameterName:
		return none()

	case piece.ParameterName:
		oldParam, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		if newParam.IsWildcard() && p.Range.Empty() && !oldParam.IsWildcard() {
			return insert(" " + oldParam.Label())
		}
		if strings.TrimSpace(pieceText(p, snap)) == strings.TrimSpace(newParam.LabelOrEmpty()) {
			return replace("")
		}
		return none()

	case piece.DeclArgumentLabel:
		_, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		if p.Range.Empty() {
			return insert(newParam.LabelOrUnderscore() + " ")
		}
		return replace(newParam.LabelOrUnderscore())

	case piece.CallArgumentLabel:
		_, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		return replace(newParam.LabelOrEmpty())

	case piece.CallArgumentColon:
		_, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		if newParam.IsWildcard() {
			return replace("")
		}
		return none()

	case piece.CallArgumentCombined:
		_, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		if !newParam.IsWildcard() {
			return insert(newParam.Label() + ": ")
		}
		return none()

	case piece.SelectorArgumentLabel:
		_, newParam, ok := pieceParams(p, oldName, newName)
		if !ok {
			return none()
		}
		return replace(newParam.LabelOrUnderscore())

	default:
		return none()
	}
}

// pieceParams resolves p's old and new parameters by its ParameterIndex.
// It reports ok=false when the piece has no parameter index, when the
// index is out of range of oldName (malformed input), and when it is out
// of range of newName (Open Question (a): "new name supplies fewer labels
// than the old"); every caller in editForPiece then returns none(), so
// such pieces are left untouched.
func pieceParams(p piece.Piece, oldName, newName names.CompoundName) (old, new names.Parameter, ok bool) {
	if !p.HasParameterIndex {
		return names.Wildcard, names.Wildcard, false
	}
	old, ok = oldName.Parameter(p.ParameterIndex)
	if !ok {
		return names.Wildcard, names.Wildcard, false
	}
	new, newOk := newName.Parameter(p.ParameterIndex)
	if !newOk {
		// Lenient: treat a missing new-side label as "no edit for this
		// piece" by reporting ok=false, per Open Question (a).
		return old, names.Wildcard, false
	}
	return old, new, true
}

func pieceText(p piece.Piece, snap *snapshot.Snapshot) string {
	if snap == nil {
		return ""
	}
	start, end := int(p.Range.Start), int(p.Range.End)
	if start < 0 || end > len(snap.Text) || start > end {
		return ""
	}
	return string(snap.Text[start:end])
}

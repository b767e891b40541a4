// Package xlate implements the name translator (C3, spec §4.3):
// bidirectional, memoized translation between a symbol's definition-site
// spelling and its counterpart in the other language family.
package xlate

import (
	"context"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/names"
	"github.com/sourcekit-bridge/xlangrename/piece"
	"github.com/sourcekit-bridge/xlangrename/rerrors"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
	"golang.org/x/sync/singleflight"
)

// A TranslatableName holds a symbol's definition-site identity (spec
// §3): all its fields refer to the declaring site, regardless of where
// rename was invoked. It carries two lazily computed translations
// (Swift→Clang via ClangName, Clang→Swift via SwiftName), each memoized
// after its first successful computation.
//
// TranslatableName is created per rename request and is not safe to
// reuse across requests; its zero value is not usable (use New).
type TranslatableName struct {
	DefinitionName       string
	DefinitionURI        protocol.DocumentURI
	DefinitionPosition   piece.Offset
	DefinitionLanguage   snapshot.Language
	IsObjectiveCSelector bool

	group     singleflight.Group
	clangOnce memoized
	swiftOnce memoized
}

// memoized guards one cached translation result behind a mutex: the
// first caller to *succeed* computes it (via the enclosing
// singleflight.Group, which also dedupes concurrent callers racing to be
// first) and every later caller, concurrent or not, returns the cached
// value without recomputing. A failed attempt is never cached — the
// group releases its key once Do returns, so the next caller (or a
// retry by the same caller) re-runs compute instead of replaying the
// same transient error forever.
type memoized struct {
	mu    sync.Mutex
	done  bool
	value string
}

func (m *memoized) get(group *singleflight.Group, key string, compute func() (string, error)) (string, error) {
	m.mu.Lock()
	if m.done {
		v := m.value
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err, _ := group.Do(key, func() (any, error) {
		m.mu.Lock()
		if m.done {
			v := m.value
			m.mu.Unlock()
			return v, nil
		}
		m.mu.Unlock()
		v, err := compute()
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.done = true
		m.value = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// New constructs a TranslatableName over a symbol's definition site.
func New(definitionName string, uri protocol.DocumentURI, position piece.Offset, lang snapshot.Language, isObjectiveCSelector bool) *TranslatableName {
	return &TranslatableName{
		DefinitionName:       definitionName,
		DefinitionURI:        uri,
		DefinitionPosition:   position,
		DefinitionLanguage:   lang,
		IsObjectiveCSelector: isObjectiveCSelector,
	}
}

// WithName returns a new TranslatableName identical to n except for its
// DefinitionName, per spec §4.6 step 5 ("cloning oldTranslatableName
// with its definition name replaced"). The clone starts with empty
// translation caches.
func (n *TranslatableName) WithName(name string) *TranslatableName {
	return New(name, n.DefinitionURI, n.DefinitionPosition, n.DefinitionLanguage, n.IsObjectiveCSelector)
}

// ClangName returns n's spelling in the Clang-family language, computing
// and memoizing it on first call (spec §4.3).
func (n *TranslatableName) ClangName(ctx context.Context, client swiftbackend.Client) (string, error) {
	return n.clangOnce.get(&n.group, "clang", func() (string, error) {
		return n.computeClangName(ctx, client)
	})
}

func (n *TranslatableName) computeClangName(ctx context.Context, client swiftbackend.Client) (string, error) {
	switch n.DefinitionLanguage {
	case snapshot.Clang:
		return n.DefinitionName, nil
	case snapshot.Swift:
		compound := names.Parse(n.DefinitionName)
		argNames := make([]string, len(compound.Parameters))
		for i, p := range compound.Parameters {
			argNames[i] = p.LabelOrUnderscore()
		}
		resp, err := client.TranslateName(ctx, swiftbackend.TranslateRequest{
			SourceFile: string(n.DefinitionURI),
			Offset:     int(n.DefinitionPosition),
			NameKind:   swiftbackend.Swift,
			BaseName:   compound.BaseName,
			ArgNames:   argNames,
		})
		if err != nil {
			return "", err
		}
		return renderSelector(resp)
	default:
		return "", rerrors.ErrUnsupportedLanguage
	}
}

// renderSelector concatenates a Swift→ObjC translation response's
// selector pieces, suffixing each with ":" for a multi-arg selector
// (spec §4.3).
func renderSelector(resp swiftbackend.TranslateResponse) (string, error) {
	if len(resp.SelectorPieces) == 0 {
		return "", &rerrors.MalformedTranslationResponseError{Direction: "swift-to-clang", Payload: resp}
	}
	if resp.IsZeroArgSelector {
		return resp.SelectorPieces[0], nil
	}
	var b strings.Builder
	for _, p := range resp.SelectorPieces {
		b.WriteString(p)
		b.WriteByte(':')
	}
	return b.String(), nil
}

// SwiftName returns n's spelling in the Swift-family language, computing
// and memoizing it on first call (spec §4.3). atPosition is the
// call-site position to pass to the Swift backend for an ObjC→Swift
// translation; inSnapshot resolves it to an offset.
func (n *TranslatableName) SwiftName(ctx context.Context, client swiftbackend.Client, atPosition protocol.Position, inSnapshot *snapshot.Snapshot) (string, error) {
	return n.swiftOnce.get(&n.group, "swift", func() (string, error) {
		return n.computeSwiftName(ctx, client, atPosition, inSnapshot)
	})
}

func (n *TranslatableName) computeSwiftName(ctx context.Context, client swiftbackend.Client, atPosition protocol.Position, inSnapshot *snapshot.Snapshot) (string, error) {
	if n.DefinitionLanguage == snapshot.Swift {
		return n.DefinitionName, nil
	}
	if n.DefinitionLanguage != snapshot.Clang {
		return "", rerrors.ErrUnsupportedLanguage
	}

	offset, err := inSnapshot.Mapper.PositionToOffset(atPosition)
	if err != nil {
		return "", &rerrors.CannotComputeOffsetError{Position: atPosition, Err: err}
	}

	req := swiftbackend.TranslateRequest{
		SourceFile: string(inSnapshot.URI),
		Offset:     offset,
		NameKind:   swiftbackend.ObjectiveC,
	}
	if n.IsObjectiveCSelector {
		req.SelectorPieces = resuffixSelectorPieces(n.DefinitionName)
	} else {
		req.BaseName = n.DefinitionName
	}

	resp, err := client.TranslateName(ctx, req)
	if err != nil {
		return "", err
	}
	return renderSwiftName(resp)
}

// resuffixSelectorPieces splits an Objective-C selector on ":", drops the
// empty segment after a trailing ":", and re-suffixes each remaining
// piece with ":" (spec §4.3), so "doThing:with:" becomes
// ["doThing:", "with:"].
func resuffixSelectorPieces(selector string) []string {
	parts := strings.Split(selector, ":")
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	pieces := make([]string, len(parts))
	for i, p := range parts {
		pieces[i] = p + ":"
	}
	return pieces
}

// renderSwiftName reconstructs base + "(" + argNames.join + ")" from an
// ObjC→Swift translation response; empty argument names render as "_:"
// (spec §4.3).
func renderSwiftName(resp swiftbackend.TranslateResponse) (string, error) {
	if resp.BaseName == "" {
		return "", &rerrors.MalformedTranslationResponseError{Direction: "clang-to-swift", Payload: resp}
	}
	if len(resp.ArgNames) == 0 {
		return resp.BaseName, nil
	}
	var b strings.Builder
	b.WriteString(resp.BaseName)
	b.WriteByte('(')
	for _, a := range resp.ArgNames {
		if a == "" {
			b.WriteString("_:")
		} else {
			b.WriteString(a)
			b.WriteByte(':')
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}

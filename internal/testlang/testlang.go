// Package testlang provides in-memory fakes of this module's external
// collaborators (document source, workspace, language services, symbol
// index, and both backends), so rename.Orchestrator can be exercised
// end to end without a real Swift or Clang toolchain. Grounded on
// golang-tools's own fake-client test harnesses, which stand in for
// gopls's LSP client the same way these stand in for sourcekitd/clangd.
package testlang

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/clangbackend"
	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/langservice"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
)

// Source is an in-memory snapshot.Source over a fixed set of files.
type Source struct {
	Files map[protocol.DocumentURI]*snapshot.Snapshot
}

// NewSource builds an empty Source; register files with Add.
func NewSource() *Source {
	return &Source{Files: map[protocol.DocumentURI]*snapshot.Snapshot{}}
}

// Add registers a file's content under uri.
func (s *Source) Add(uri protocol.DocumentURI, lang snapshot.Language, text string) {
	s.Files[uri] = snapshot.New(uri, lang, []byte(text))
}

func (s *Source) Snapshot(ctx context.Context, uri protocol.DocumentURI) (*snapshot.Snapshot, error) {
	snap, ok := s.Files[uri]
	if !ok {
		return nil, fmt.Errorf("testlang: no snapshot for %s", uri)
	}
	return snap, nil
}

// Workspace reports every URI in Open as belonging to an open workspace.
type Workspace struct {
	Open map[protocol.DocumentURI]bool
}

// NewWorkspace builds a Workspace with every uri in uris marked open.
func NewWorkspace(uris ...protocol.DocumentURI) *Workspace {
	w := &Workspace{Open: map[protocol.DocumentURI]bool{}}
	for _, u := range uris {
		w.Open[u] = true
	}
	return w
}

func (w *Workspace) IsOpen(ctx context.Context, uri protocol.DocumentURI) bool {
	return w.Open[uri]
}

// Services maps request URIs to a language service by the Language
// stored in the URI's snapshot in Source: Swift routes to Swift, Clang to
// Clang, and a URI with no snapshot or an Unknown language resolves to no
// service. Callers needing finer control can populate ByURI directly.
type Services struct {
	Swift  langservice.Service
	Clang  langservice.Service
	ByURI  map[protocol.DocumentURI]langservice.Service
	Source *Source
}

// NewServices builds a Services resolver that routes by the languages
// stored in source's snapshots.
func NewServices(source *Source, swift, clang langservice.Service) *Services {
	return &Services{Swift: swift, Clang: clang, ByURI: map[protocol.DocumentURI]langservice.Service{}, Source: source}
}

func (s *Services) ServiceForURI(ctx context.Context, uri protocol.DocumentURI) (langservice.Service, bool) {
	if svc, ok := s.ByURI[uri]; ok {
		return svc, true
	}
	snap, ok := s.Source.Files[uri]
	if !ok {
		return nil, false
	}
	return s.ServiceForLanguage(ctx, snap.Language)
}

// ServiceForLanguage routes by language alone, independent of any
// document's own stored language — this is what step 8's per-file
// routing calls, so a test wiring index.LanguageByPath differently from
// a file's own snapshot.Language exercises the same disagreement a real
// divergence between the index and the document manager would.
func (s *Services) ServiceForLanguage(ctx context.Context, lang snapshot.Language) (langservice.Service, bool) {
	switch lang {
	case snapshot.Swift:
		return s.Swift, s.Swift != nil
	case snapshot.Clang:
		return s.Clang, s.Clang != nil
	default:
		return nil, false
	}
}

// Index is an in-memory index.Index keyed by USR.
type Index struct {
	OccurrencesByUSR map[string][]index.Occurrence
	LanguageByPath   map[string]snapshot.Language
}

// NewIndex builds an empty Index.
func NewIndex() *Index {
	return &Index{OccurrencesByUSR: map[string][]index.Occurrence{}, LanguageByPath: map[string]snapshot.Language{}}
}

func (idx *Index) Occurrences(ctx context.Context, usr string, roles index.Role) ([]index.Occurrence, error) {
	var out []index.Occurrence
	for _, occ := range idx.OccurrencesByUSR[usr] {
		if occ.Roles&roles != 0 {
			out = append(out, occ)
		}
	}
	return out, nil
}

func (idx *Index) SymbolProvider(ctx context.Context, path string) (snapshot.Language, bool) {
	lang, ok := idx.LanguageByPath[path]
	return lang, ok
}

// LocalRenamer is a canned LocalSwiftRenamer/LocalClangRenamer: Rename
// and PrepareRename return fixed responses regardless of input,
// standing in for a real backend's own semantic rename.
type LocalRenamer struct {
	RenameEdits  protocol.WorkspaceEdit
	RenameUSR    string
	RenameErr    error
	PrepareResp  langservice.PrepareRenameResponse
	PrepareOK    bool
	PrepareErr   error
	SymbolDetail []langservice.SymbolDetail
	SymbolErr    error
}

func (l *LocalRenamer) LocalRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (protocol.WorkspaceEdit, string, error) {
	return l.RenameEdits, l.RenameUSR, l.RenameErr
}

func (l *LocalRenamer) LocalPrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (langservice.PrepareRenameResponse, bool, error) {
	return l.PrepareResp, l.PrepareOK, l.PrepareErr
}

func (l *LocalRenamer) LocalSymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]langservice.SymbolDetail, error) {
	return l.SymbolDetail, l.SymbolErr
}

// SwiftClient is a scripted swiftbackend.Client: translations and
// syntactic ranges are looked up by request shape rather than computed,
// mirroring how the package-level fakes in swiftbackend/xlate tests work.
type SwiftClient struct {
	Translate func(ctx context.Context, req swiftbackend.TranslateRequest) (swiftbackend.TranslateResponse, error)
	Ranges    func(ctx context.Context, req swiftbackend.SyntacticRangesRequest) (swiftbackend.SyntacticRangesResponse, error)
	Calls     int
}

func (c *SwiftClient) TranslateName(ctx context.Context, req swiftbackend.TranslateRequest) (swiftbackend.TranslateResponse, error) {
	c.Calls++
	return c.Translate(ctx, req)
}

func (c *SwiftClient) FindSyntacticRenameRanges(ctx context.Context, req swiftbackend.SyntacticRangesRequest) (swiftbackend.SyntacticRangesResponse, error) {
	return c.Ranges(ctx, req)
}

// ClangClient is a scripted clangbackend.Client.
type ClangClient struct {
	Rename func(ctx context.Context, req clangbackend.IndexedRenameRequest) (protocol.WorkspaceEdit, error)
}

func (c *ClangClient) IndexedRename(ctx context.Context, req clangbackend.IndexedRenameRequest) (protocol.WorkspaceEdit, error) {
	return c.Rename(ctx, req)
}

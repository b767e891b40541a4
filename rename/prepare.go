package rename

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/sourcekit-bridge/xlangrename/internal/logging"
	"github.com/sourcekit-bridge/xlangrename/langservice"
	"github.com/sourcekit-bridge/xlangrename/rerrors"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/swiftbackend"
)

// PrepareRequest is a prepare-rename request (spec §6).
type PrepareRequest struct {
	URI      protocol.DocumentURI
	Position protocol.Position
}

// PrepareRename implements C7 (spec §4.7): delegate to the language
// service's own prepare-rename to obtain (range, placeholder), then, if
// the symbol has a USR and an index is available, replace the
// placeholder with the definition-site spelling translated into the
// language the caller is typing in, so cross-language rename dialogs
// show the user the name they must actually type.
//
// Returns ok=false when the service declines (no renameable symbol at
// the position).
func (o *Orchestrator) PrepareRename(ctx context.Context, req PrepareRequest) (langservice.PrepareRenameResponse, bool, error) {
	ctx, done := logging.Span(ctx, "prepareRename", zap.String("uri", string(req.URI)))
	defer done()

	if !o.Workspaces.IsOpen(ctx, req.URI) {
		return langservice.PrepareRenameResponse{}, false, fmt.Errorf("%w: %s", rerrors.ErrWorkspaceNotOpen, req.URI)
	}
	service, ok := o.Services.ServiceForURI(ctx, req.URI)
	if !ok {
		return langservice.PrepareRenameResponse{}, false, nil
	}

	snap, err := o.Source.Snapshot(ctx, req.URI)
	if err != nil {
		return langservice.PrepareRenameResponse{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	resp, ok, err := service.PrepareRename(ctx, snap, req.Position)
	if err != nil || !ok {
		return langservice.PrepareRenameResponse{}, false, err
	}

	if o.Index == nil {
		return resp, true, nil
	}
	details, err := service.SymbolInfo(ctx, snap, req.Position)
	if err != nil {
		logging.Skip(ctx, "symbol info lookup failed; using service placeholder", zap.Error(err))
		return resp, true, nil
	}
	usr := firstUSR(details)
	if usr == "" {
		return resp, true, nil
	}

	spelling, err := o.definitionSpelling(ctx, usr, service, snap, req.Position)
	if err != nil {
		logging.Skip(ctx, "definition-site spelling unavailable; using service placeholder", zap.String("usr", usr), zap.Error(err))
		return resp, true, nil
	}
	resp.Placeholder = spelling
	return resp, true, nil
}

func firstUSR(details []langservice.SymbolDetail) string {
	for _, d := range details {
		if d.USR != "" {
			return d.USR
		}
	}
	return ""
}

// definitionSpelling resolves usr's unique definition and returns its
// spelling in the language of callSnap, translating via the Swift
// backend client the owning service already holds when the definition
// and the call site are in different language families (spec §4.7).
func (o *Orchestrator) definitionSpelling(ctx context.Context, usr string, callService langservice.Service, callSnap *snapshot.Snapshot, callPosition protocol.Position) (string, error) {
	oldTranslatable, _, err := o.resolveDefinition(ctx, usr)
	if err != nil {
		return "", err
	}

	translator, ok := swiftTranslatorOf(callService)
	if !ok {
		return oldTranslatable.DefinitionName, nil
	}
	if callSnap.Language == snapshot.Swift {
		return oldTranslatable.SwiftName(ctx, translator, callPosition, callSnap)
	}
	return oldTranslatable.ClangName(ctx, translator)
}

// swiftTranslatorOf returns the swiftbackend.Client a service uses for
// C3 name translation (spec §4.3: all translation is mediated by the
// Swift backend, so both concrete services hold one).
func swiftTranslatorOf(service langservice.Service) (swiftbackend.Client, bool) {
	switch sv := service.(type) {
	case *langservice.SwiftService:
		return sv.Backend, sv.Backend != nil
	case *langservice.ClangService:
		return sv.Translator, sv.Translator != nil
	default:
		return nil, false
	}
}

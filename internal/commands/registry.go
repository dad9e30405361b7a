package commands

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers
// into a go-command registry or dispatcher.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by Register.
type HandlerSet struct {
	Load   *Handler[LoadCorpusCommand]
	Render *Handler[RenderDocumentCommand]
	Export *Handler[ExportCorpusCommand]
}

// Dependencies are the services the handlers operate on.
type Dependencies struct {
	Documents     *documents.Service
	Media         *media.Service
	Renderers     Renderers
	Sink          Sink
	DefaultLocale string
	Logger        interfaces.LoggerProvider
}

// ErrDocumentsRequired is returned when Register is called without a
// document service.
var ErrDocumentsRequired = errors.New("commands: document service is required")

// Register builds every handler and registers them with reg when it is set.
func Register(reg CommandRegistry, deps Dependencies) (*HandlerSet, error) {
	if deps.Documents == nil {
		return nil, ErrDocumentsRequired
	}
	sink := deps.Sink
	if sink == nil {
		sink = &MemorySink{}
	}
	logger := logging.CommandsLogger(deps.Logger)

	set := &HandlerSet{
		Load:   NewLoadCorpusHandler(deps.Documents, deps.Media, logger),
		Render: NewRenderDocumentHandler(deps.Documents, deps.Renderers, sink, deps.DefaultLocale, logger),
		Export: NewExportCorpusHandler(deps.Documents, deps.Renderers, sink, logger),
	}

	if reg != nil {
		for _, handler := range []any{set.Load, set.Render, set.Export} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// DispatcherRegistry subscribes handlers on the go-command dispatcher so
// commands can be sent with dispatcher.Dispatch.
type DispatcherRegistry struct {
	unsubscribe []func()
}

var _ CommandRegistry = (*DispatcherRegistry)(nil)

func (r *DispatcherRegistry) RegisterCommand(handler any) error {
	switch h := handler.(type) {
	case *Handler[LoadCorpusCommand]:
		r.unsubscribe = append(r.unsubscribe, dispatcher.SubscribeCommand(h).Unsubscribe)
	case *Handler[RenderDocumentCommand]:
		r.unsubscribe = append(r.unsubscribe, dispatcher.SubscribeCommand(h).Unsubscribe)
	case *Handler[ExportCorpusCommand]:
		r.unsubscribe = append(r.unsubscribe, dispatcher.SubscribeCommand(h).Unsubscribe)
	default:
		return fmt.Errorf("commands: unsupported handler %T", handler)
	}
	return nil
}

// Close removes every subscription made through r.
func (r *DispatcherRegistry) Close() {
	for _, unsubscribe := range r.unsubscribe {
		unsubscribe()
	}
	r.unsubscribe = nil
}

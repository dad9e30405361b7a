package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation     = "WIKITEXT_COMMAND_VALIDATION_FAILED"
	codeCanceled       = "WIKITEXT_COMMAND_CANCELED"
	codeTimeout        = "WIKITEXT_COMMAND_TIMEOUT"
	codeContext        = "WIKITEXT_COMMAND_CONTEXT_ERROR"
	codeExecute        = "WIKITEXT_COMMAND_FAILED"
	codeDocumentAbsent = "WIKITEXT_DOCUMENT_NOT_FOUND"
)

// ErrDocumentNotFound is returned when neither the requested nor the default
// locale holds the document to render.
var ErrDocumentNotFound = errors.New("commands: document not found")

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(codeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(codeContext)
	}
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, ErrDocumentNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "document not found").
			WithTextCode(codeDocumentAbsent)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecute)
}

package commands

import (
	"context"
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped publish errors so CLI output and host
// applications can react to the failure class without string matching.
const (
	PublishValidationCode = "PUBLISH_VALIDATION_FAILED"
	PublishCanceledCode   = "PUBLISH_CANCELED"
	PublishTimeoutCode    = "PUBLISH_TIMEOUT"
	PublishContextCode    = "PUBLISH_CONTEXT_ERROR"
	PublishSourceCode     = "PUBLISH_SOURCE_UNREADABLE"
	PublishPipelineCode   = "PUBLISH_PIPELINE_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "publish request rejected").
		WithTextCode(PublishValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publish cancelled").
			WithTextCode(PublishCanceledCode)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publish deadline exceeded").
			WithTextCode(PublishTimeoutCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publish context error").
			WithTextCode(PublishContextCode)
	}
}

// wrapExecuteError classifies pipeline failures. An unreadable source
// document is an operator mistake (wrong path, missing file) and gets its own
// code; everything else from the fan-out is a pipeline failure.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "source document unreadable").
			WithTextCode(PublishSourceCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "publish pipeline failed").
		WithTextCode(PublishPipelineCode)
}

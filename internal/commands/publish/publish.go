// Package publishcmd defines the publish command message and its handler.
package publishcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-postkit/internal/commands"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

const publishPostMessageType = "postkit.post.publish"

// Service runs the full publish pipeline for a source document.
type Service interface {
	PublishFile(ctx context.Context, req Request) (*interfaces.PublishReport, error)
}

// Request carries the resolved publish parameters into the service.
type Request struct {
	SourcePath string
	ImagePath  string
	VideoPath  string
	DryRun     bool
	Force      bool
}

// PublishPostCommand requests publication of a Markdown document.
type PublishPostCommand struct {
	SourcePath string `json:"source_path"`
	ImagePath  string `json:"image_path,omitempty"`
	VideoPath  string `json:"video_path,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
	Force      bool   `json:"force,omitempty"`
}

// Type implements command.Message.
func (PublishPostCommand) Type() string { return publishPostMessageType }

// Validate ensures the message carries the required fields before reaching
// handlers.
func (m PublishPostCommand) Validate() error {
	errs := validation.Errors{}
	if m.SourcePath == "" {
		errs["source_path"] = validation.NewError("postkit.post.publish.source_required", "source path is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPostHandler runs the pipeline via the shared command foundation.
type PublishPostHandler struct {
	inner  *commands.Handler[PublishPostCommand]
	report *interfaces.PublishReport
}

// NewPublishPostHandler constructs a handler wired to the publish service.
func NewPublishPostHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPostCommand]) *PublishPostHandler {
	h := &PublishPostHandler{}

	exec := func(ctx context.Context, msg PublishPostCommand) error {
		report, err := service.PublishFile(ctx, Request{
			SourcePath: msg.SourcePath,
			ImagePath:  msg.ImagePath,
			VideoPath:  msg.VideoPath,
			DryRun:     msg.DryRun,
			Force:      msg.Force,
		})
		h.report = report
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishPostCommand]{
		commands.WithLogger[PublishPostCommand](logger),
		commands.WithOperation[PublishPostCommand]("post.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	h.inner = commands.NewHandler[PublishPostCommand](exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[PublishPostCommand].Execute.
func (h *PublishPostHandler) Execute(ctx context.Context, msg PublishPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the outcome of the most recent execution, if any. Platform
// failures live here rather than in the Execute error, since a partially
// failed fan-out is still a completed command.
func (h *PublishPostHandler) Report() *interfaces.PublishReport {
	return h.report
}

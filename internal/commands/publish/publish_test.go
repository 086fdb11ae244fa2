package publishcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-postkit/pkg/interfaces"
)

type stubService struct {
	req    Request
	report *interfaces.PublishReport
	err    error
	calls  int
}

func (s *stubService) PublishFile(_ context.Context, req Request) (*interfaces.PublishReport, error) {
	s.calls++
	s.req = req
	return s.report, s.err
}

func TestExecuteDelegatesToService(t *testing.T) {
	service := &stubService{
		report: &interfaces.PublishReport{
			Results: []interfaces.PlatformResult{
				{Platform: interfaces.PlatformBluesky, Status: interfaces.StatusPublished},
			},
		},
	}
	handler := NewPublishPostHandler(service, nil)

	msg := PublishPostCommand{
		SourcePath: "content/post.md",
		ImagePath:  "content/cover.png",
		DryRun:     true,
		Force:      true,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("service calls = %d", service.calls)
	}
	if service.req.SourcePath != "content/post.md" || !service.req.DryRun || !service.req.Force {
		t.Fatalf("request not forwarded: %+v", service.req)
	}
	if handler.Report() == nil || len(handler.Report().Results) != 1 {
		t.Fatalf("report not captured: %+v", handler.Report())
	}
}

func TestExecuteRejectsMissingSource(t *testing.T) {
	service := &stubService{}
	handler := NewPublishPostHandler(service, nil)

	err := handler.Execute(context.Background(), PublishPostCommand{})
	if err == nil {
		t.Fatalf("expected validation error for empty source path")
	}
	if service.calls != 0 {
		t.Fatalf("service must not run on invalid messages")
	}
}

func TestExecutePropagatesServiceError(t *testing.T) {
	service := &stubService{err: errors.New("parse failed")}
	handler := NewPublishPostHandler(service, nil)

	err := handler.Execute(context.Background(), PublishPostCommand{SourcePath: "content/post.md"})
	if err == nil {
		t.Fatalf("expected wrapped service error")
	}
}

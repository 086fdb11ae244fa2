// Package postkit converts a Markdown document into platform-specific
// payloads and dispatches them to publishing backends. The façade wires the
// pure core (parsing, chunking, normalization) to pluggable publishers and an
// optional local publish ledger.
package postkit

import (
	"context"
	"errors"
	"fmt"
	"os"

	publishcmd "github.com/goliatone/go-postkit/internal/commands/publish"
	"github.com/goliatone/go-postkit/internal/history"
	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/internal/logging/gologger"
	"github.com/goliatone/go-postkit/internal/markdown"
	"github.com/goliatone/go-postkit/internal/normalize"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// Postkit is the top-level runtime façade.
type Postkit struct {
	cfg        Config
	provider   interfaces.LoggerProvider
	logger     interfaces.Logger
	parser     interfaces.MarkdownParser
	normalizer *normalize.Normalizer
	publishers []interfaces.Publisher
	ledger     *history.Service
}

// Option overrides a collaborator during construction.
type Option func(*Postkit)

// WithPublisher registers a platform publisher. Publishers run in
// registration order.
func WithPublisher(pub interfaces.Publisher) Option {
	return func(p *Postkit) {
		if pub != nil {
			p.publishers = append(p.publishers, pub)
		}
	}
}

// WithLoggerProvider overrides the logging provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Postkit) {
		if provider != nil {
			p.provider = provider
		}
	}
}

// WithMarkdownParser overrides the parser selected by the config engine.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(p *Postkit) {
		if parser != nil {
			p.parser = parser
		}
	}
}

// WithHistory attaches the publish ledger service.
func WithHistory(service *history.Service) Option {
	return func(p *Postkit) {
		p.ledger = service
	}
}

// New constructs the module from validated configuration.
func New(cfg Config, opts ...Option) (*Postkit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrModuleDisabled
	}

	p := &Postkit{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if p.provider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		p.provider = provider
	}
	p.logger = logging.ModuleLogger(p.provider, logging.RootModule)

	if p.parser == nil {
		p.parser = markdown.NewParser(cfg.Markdown)
	}

	p.normalizer = normalize.New(normalize.Config{
		MaxPostLength: cfg.Normalize.MaxPostLength,
		SummaryLength: cfg.Normalize.SummaryLength,
	}, logging.ModuleLogger(p.provider, logging.NormalizeModule))

	return p, nil
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return logging.NoOpProvider(), nil
	}
	switch cfg.Logging.Provider {
	case "noop":
		return logging.NoOpProvider(), nil
	default:
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	}
}

// Logger exposes the module logger for host integrations.
func (p *Postkit) Logger() interfaces.Logger { return p.logger }

// LoggerProvider exposes the provider so collaborators share one sink.
func (p *Postkit) LoggerProvider() interfaces.LoggerProvider { return p.provider }

// Load reads and parses a Markdown document from disk.
func (p *Postkit) Load(path string) (*interfaces.Post, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	post, err := markdown.BuildPost(path, source, p.parser)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("post.loaded", "path", path, "title", post.Title)
	return post, nil
}

// Normalize derives every platform payload from a parsed post.
func (p *Postkit) Normalize(post *interfaces.Post, media interfaces.Media) *interfaces.NormalizedContent {
	return p.normalizer.Normalize(post, media)
}

// Publish fans content out to every registered publisher and returns a report
// with one entry per known platform. Platforms no publisher covers are marked
// skipped; publisher failures are captured per platform, never returned.
func (p *Postkit) Publish(ctx context.Context, content *interfaces.NormalizedContent) *interfaces.PublishReport {
	seen := make(map[string]interfaces.PlatformResult)
	for _, pub := range p.publishers {
		for _, res := range pub.Publish(ctx, content) {
			seen[res.Platform] = res
		}
	}

	report := &interfaces.PublishReport{}
	for _, platform := range interfaces.KnownPlatforms() {
		res, ok := seen[platform]
		if !ok {
			res = interfaces.PlatformResult{
				Platform: platform,
				Status:   interfaces.StatusSkipped,
			}
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// PublishFile runs the full pipeline for a source document: parse, normalize,
// ledger gate, fan-out, ledger record. Implements the publish command service.
func (p *Postkit) PublishFile(ctx context.Context, req publishcmd.Request) (*interfaces.PublishReport, error) {
	post, err := p.Load(req.SourcePath)
	if err != nil {
		return nil, err
	}

	media := interfaces.Media{ImagePath: req.ImagePath, VideoPath: req.VideoPath}
	content := p.Normalize(post, media)

	if req.DryRun {
		p.logger.Info("publish.dry_run", "source", req.SourcePath, "chunks", len(content.Social.Thread))
		return p.skippedReport(), nil
	}

	if !req.Force && p.ledger != nil {
		if record := p.ledger.Lookup(ctx, req.SourcePath); record != nil && record.Published() {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPublished, req.SourcePath)
		}
	}

	report := p.Publish(ctx, content)
	if p.ledger != nil {
		p.ledger.RecordPublish(ctx, post, report, len(content.Social.Thread))
	}
	return report, nil
}

func (p *Postkit) skippedReport() *interfaces.PublishReport {
	report := &interfaces.PublishReport{}
	for _, platform := range interfaces.KnownPlatforms() {
		report.Results = append(report.Results, interfaces.PlatformResult{
			Platform: platform,
			Status:   interfaces.StatusSkipped,
		})
	}
	return report
}

var _ publishcmd.Service = (*Postkit)(nil)

// IsAlreadyPublished reports whether err is the ledger gate refusing a
// repeat publish.
func IsAlreadyPublished(err error) bool {
	return errors.Is(err, ErrAlreadyPublished)
}

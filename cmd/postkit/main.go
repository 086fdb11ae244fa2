package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	postkit "github.com/goliatone/go-postkit"
	"github.com/goliatone/go-postkit/internal/atproto"
	publishcmd "github.com/goliatone/go-postkit/internal/commands/publish"
	"github.com/goliatone/go-postkit/internal/credentials"
	"github.com/goliatone/go-postkit/internal/history"
	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/internal/mailer"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

const defaultConfigPath = "postkit.yaml"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "postkit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "publish":
		return runPublish(args[1:])
	case "init":
		return runInit(args[1:])
	case "-h", "--help", "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  postkit publish <file.md> [--image path] [--video path] [--dry-run] [--force] [--config path]
  postkit init [--config path]`)
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("postkit-init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path for the example credential file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := credentials.Init(*configPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote example config to %s\n", *configPath)
	return nil
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("postkit-publish", flag.ExitOnError)
	imagePath := fs.String("image", "", "Cover image attached to the first post and the email")
	videoPath := fs.String("video", "", "Video attached to the publish request")
	dryRun := fs.Bool("dry-run", false, "Preview the thread without contacting any platform")
	force := fs.Bool("force", false, "Publish even when the ledger says this document already went out")
	configPath := fs.String("config", defaultConfigPath, "Credential file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("publish expects exactly one markdown file")
	}
	sourcePath := fs.Arg(0)

	cfg := postkit.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Features.History = !*dryRun

	opts, ledgerClose, err := buildPublishers(cfg, *configPath, *dryRun)
	if err != nil {
		return err
	}
	if ledgerClose != nil {
		defer ledgerClose()
	}

	kit, err := postkit.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	handler := publishcmd.NewPublishPostHandler(kit, kit.Logger())
	cmd := publishcmd.PublishPostCommand{
		SourcePath: sourcePath,
		ImagePath:  *imagePath,
		VideoPath:  *videoPath,
		DryRun:     *dryRun,
		Force:      *force,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return err
	}

	if *dryRun {
		return printPreview(kit, sourcePath, *imagePath, *videoPath)
	}
	return printReport(handler.Report())
}

// buildPublishers wires the real backends. Dry runs skip credentials
// entirely so a preview works without any config file.
func buildPublishers(cfg postkit.Config, configPath string, dryRun bool) ([]postkit.Option, func(), error) {
	if dryRun {
		return nil, nil, nil
	}

	creds, err := credentials.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	var opts []postkit.Option

	client := atproto.NewClient(atproto.Credentials{
		Host:     creds.Atproto.Host,
		Handle:   creds.Atproto.Handle,
		Password: creds.Atproto.Password,
	}, atproto.WithPostDelay(cfg.Publish.PostDelay))
	opts = append(opts, postkit.WithPublisher(atproto.NewPublisher(client,
		atproto.WithURLResolver(atproto.NewURLResolver(cfg.Navigation)),
	)))

	opts = append(opts, postkit.WithPublisher(mailer.NewPublisher(mailer.Config{
		Host:     creds.SMTP.Host,
		Port:     creds.SMTP.Port,
		Username: creds.SMTP.Username,
		Password: creds.SMTP.Password,
		From:     creds.SMTP.From,
		To:       creds.SMTP.To,
	})))

	var ledgerClose func()
	if cfg.Features.History {
		ctx := context.Background()
		db, err := history.OpenDB(ctx, cfg.History.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open publish ledger: %w", err)
		}
		ledgerClose = func() { _ = db.Close() }
		cacheService, keySerializer, err := history.NewCacheServices(cfg.History.CacheTTL)
		if err != nil {
			ledgerClose()
			return nil, nil, fmt.Errorf("ledger cache: %w", err)
		}
		repo := history.NewBunRecordRepositoryWithCache(db, cacheService, keySerializer)
		opts = append(opts, postkit.WithHistory(history.NewService(repo, logging.NoOp())))
	}

	return opts, ledgerClose, nil
}

func printPreview(kit *postkit.Postkit, sourcePath, imagePath, videoPath string) error {
	post, err := kit.Load(sourcePath)
	if err != nil {
		return err
	}
	content := kit.Normalize(post, interfaces.Media{ImagePath: imagePath, VideoPath: videoPath})

	fmt.Fprintf(os.Stdout, "dry run: %s\n\n", post.Title)
	for i, chunk := range content.Social.Thread {
		fmt.Fprintf(os.Stdout, "--- post %d/%d (%d chars) ---\n%s\n\n", i+1, len(content.Social.Thread), len([]rune(chunk)), chunk)
	}
	fmt.Fprintf(os.Stdout, "summary: %s\n", content.Social.Summary)
	if len(content.Social.Hashtags) > 0 {
		fmt.Fprintf(os.Stdout, "hashtags: %v\n", content.Social.Hashtags)
	}
	fmt.Fprintf(os.Stdout, "platforms: %v\n", interfaces.KnownPlatforms())
	return nil
}

func printReport(report *interfaces.PublishReport) error {
	if report == nil {
		return fmt.Errorf("publish produced no report")
	}
	for _, res := range report.Results {
		line := fmt.Sprintf("%-10s %s", res.Platform, res.Status)
		if res.URL != "" {
			line += "  " + res.URL
		}
		if res.Error != "" {
			line += "  (" + res.Error + ")"
		}
		fmt.Fprintln(os.Stdout, line)
	}
	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("publish failed on: %v", failed)
	}
	return nil
}

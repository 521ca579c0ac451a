package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fontget/fetch"
	"fontget/fontface"
	"fontget/localize"
	"fontget/state"
)

// outputDir is relative to current working directory.
const outputDir = "fonts"

func localizeFonts(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		_ = cli.ShowRootCommandHelp(cmd)
		return errors.New("stylesheet URL is required")
	}

	env := state.EnvFromContext(ctx)
	if cmd.NArg() > 1 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return run(ctx, env, cmd.Args().First(), outputDir)
}

// run localizes all fonts of stylesheet at src into dir.
func run(ctx context.Context, env *state.LocalEnv, src, dir string) error {
	log := env.Log

	fetcher, err := fetch.New(env.Cfg.Fetch, log)
	if err != nil {
		return fmt.Errorf("unable to prepare http client: %w", err)
	}

	log.Info("Fetching stylesheet", zap.String("url", src))
	text, err := fetcher.Text(ctx, src)
	if err != nil {
		return fmt.Errorf("unable to fetch stylesheet: %w", err)
	}
	env.Rpt.StoreData(path.Join("source", reportName(src)+".css"), []byte(text))

	extractor, err := fontface.NewExtractor(env.Cfg.Fetch.FontHost, env.Cfg.Defaults, log)
	if err != nil {
		return fmt.Errorf("unable to prepare extractor: %w", err)
	}
	descriptors, err := extractor.Extract(text)
	if errors.Is(err, fontface.ErrNoFontFaces) {
		log.Info("Nothing to do", zap.Error(err), zap.String("url", src), zap.String("host", env.Cfg.Fetch.FontHost))
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("Font-face rules found", zap.Int("count", len(descriptors)))

	rpt, err := localize.New(fetcher, env.Cfg.Fetch.Workers, log).Run(ctx, descriptors, dir)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.Store(outputDir, dir)
		env.Rpt.StoreData("localize.txt", []byte(rpt.Dump()))
	}

	for _, f := range rpt.Failed {
		log.Warn("Font is not available locally", zap.String("url", f.URL), zap.Stringer("stage", f.Stage))
	}
	log.Info("Fonts localized", zap.Int("resolved", len(rpt.Resolved)), zap.Int("failed", len(rpt.Failed)), zap.String("stylesheet", rpt.Stylesheet))
	return rpt.Err()
}

// reportName derives archive entry name from stylesheet address.
func reportName(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return slug.Make(src)
	}
	return slug.Make(u.Host + " " + u.Path + " " + u.RawQuery)
}

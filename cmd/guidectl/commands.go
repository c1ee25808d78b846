package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/app"
	"github.com/kailas-cloud/guide/internal/config"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
	"github.com/kailas-cloud/guide/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/guide/internal/logger"
	"github.com/kailas-cloud/guide/internal/repository/corpus"
	"github.com/kailas-cloud/guide/internal/version"
)

func langFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "lang",
		Aliases: []string{"l"},
		Usage:   "Content language (ru, en)",
		Value:   string(language.Default),
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "guidectl",
		Usage:   "Query and seed the cultural guide from the command line",
		Version: version.String(),
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Config environment (config/<env>.yaml)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "Read records from this YAML/JSON file instead of the configured source",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set logging level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank records for a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					langFlag(),
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Search mode (lexical, semantic)",
						Value: string(mode.Default),
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results, 0 for all",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print one record",
				ArgsUsage: "<id>",
				Action:    showCommand,
				Flags:     []cli.Flag{langFlag()},
			},
			{
				Name:      "ask",
				Usage:     "Ask a follow-up question about a record",
				ArgsUsage: "<id> <question>",
				Action:    askCommand,
				Flags:     []cli.Flag{langFlag()},
			},
			{
				Name:   "seed",
				Usage:  "Load a corpus file and store it in Redis",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the YAML/JSON corpus file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Redis key (defaults to corpus.key from config)",
					},
				},
			},
		},
	}
}

// loadConfig reads config/<env>.yaml and applies the global overrides.
func loadConfig(c *cli.Context) (config.Config, *zap.Logger, error) {
	env := c.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if path := c.String("corpus"); path != "" {
		cfg.Corpus.Source = config.CorpusSourceFile
		cfg.Corpus.Path = path
	}

	logger, err := logpkg.NewLogger(env, c.String("log-level"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

func openApp(c *cli.Context) (*app.App, error) {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	a, err := app.New(c.Context, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}
	return a, nil
}

func searchCommand(c *cli.Context) error {
	lang, err := language.Parse(c.String("lang"))
	if err != nil {
		return err
	}
	req, err := request.New(strings.Join(c.Args().Slice(), " "), lang, mode.Mode(c.String("mode")), c.Int("limit"))
	if err != nil {
		return err
	}

	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Search.Search(c.Context, &req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := c.App.Writer
	if len(results) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	for i := range results {
		rec := &results[i]
		content, err := rec.Content(lang)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d. [%s] %s (%s)\n", i+1, rec.Type().Label(lang), content.Name, rec.ID())
	}
	return nil
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one record id")
	}
	lang, err := language.Parse(c.String("lang"))
	if err != nil {
		return err
	}

	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.Search.Get(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	content, err := rec.Content(lang)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%s: %s\n", rec.Type().Label(lang), content.Name)
	if len(content.Tags) > 0 {
		fmt.Fprintf(out, "#%s\n", strings.Join(content.Tags, " #"))
	}
	if content.Description != "" {
		fmt.Fprintln(out, content.Description)
	}
	if content.Knowledge != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, content.Knowledge)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("expected a record id")
	}
	lang, err := language.Parse(c.String("lang"))
	if err != nil {
		return err
	}

	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	question := strings.Join(c.Args().Tail(), " ")
	ans, err := a.Answers.Ask(c.Context, c.Args().First(), question, lang)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, ans.Text)
	return nil
}

func seedCommand(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	records, err := corpus.LoadFile(c.String("file"))
	if err != nil {
		return err
	}

	ctx := c.Context
	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("database.addrs is not configured")
	}
	defer store.Close()

	key := c.String("key")
	if key == "" {
		key = cfg.Corpus.Key
	}
	src := corpus.NewRedisSource(store, key)
	if err := src.Save(ctx, &records); err != nil {
		return err
	}

	logger.Info("Corpus seeded", zap.String("key", src.Key()), zap.Int("records", records.Len()))
	fmt.Fprintf(c.App.Writer, "seeded %d records into %s\n", records.Len(), src.Key())
	return nil
}

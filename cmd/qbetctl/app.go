package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/app"
	"github.com/kailas-cloud/qbet/internal/config"
	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
	logpkg "github.com/kailas-cloud/qbet/internal/logger"
	catalogrepo "github.com/kailas-cloud/qbet/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/qbet/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/qbet/internal/transport/mcp"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
	"github.com/kailas-cloud/qbet/internal/version"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "qbetctl",
		Usage:     "Rank freelancers for free-text requests from the command line",
		Version:   version.String(),
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "candidates",
				Aliases: []string{"c"},
				Usage:   "Candidates YAML file (default: built-in seed)",
				EnvVars: []string{"QBET_CANDIDATES"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Service config YAML; its search and recognizer sections are used",
				EnvVars: []string{"QBET_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank candidates for a query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Print at most N candidates (0 = all)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full JSON response",
					},
				},
			},
			{
				Name:      "intent",
				Usage:     "Print the structured intent extracted from a query",
				ArgsUsage: "QUERY",
				Action:    intentCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print market statistics over the candidate list",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of top skills to report (0 = all)",
						Value: stats.DefaultTopSkills,
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the search_freelancers tool over stdio (Model Context Protocol)",
				Action: mcpCommand,
			},
		},
	}
}

// env is what every command needs: a logger, the candidate source and the pipeline.
type env struct {
	logger *zap.Logger
	source *catalogrepo.Static
	search *searchuc.Service
}

func newEnv(c *cli.Context) (*env, error) {
	logger, err := logpkg.NewLogger("cli", c.String("log-level"))
	if err != nil {
		return nil, err
	}

	var cfg config.Config
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyDefaults()
	}

	source, err := app.NewSeed(c.String("candidates"))
	if err != nil {
		return nil, err
	}

	// The CLI has no KV store, so recognizer responses are not cached.
	recognizer, err := app.NewRecognizer(cfg.Recognizer, nil, "", logger)
	if err != nil {
		return nil, err
	}

	return &env{
		logger: logger,
		source: source,
		search: app.NewSearchService(cfg.Search, source, recognizer, logger),
	}, nil
}

func queryArg(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", errors.New("missing QUERY argument")
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	if c.Int("limit") < 0 {
		return errors.New("--limit must be non-negative")
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	res := e.search.Search(c.Context, query, filter.Expression{})
	items := res.Items
	if n := c.Int("limit"); n > 0 && n < len(items) {
		items = items[:n]
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, chiTransport.SearchResponse{
			Intent: chiTransport.IntentToBody(res.Intent),
			Items:  chiTransport.CandidatesToBody(items),
			Stats:  res.Stats,
		})
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(c.App.Writer, "no matching freelancers")
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tRATE\tRATING\tAVAILABILITY\tSKILLS")
	for i, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f\t%.1f\t%s\t%s\n",
			i+1, it.ID(), it.Name(), it.HourlyRate(), it.Rating(), it.Availability(),
			strings.Join(it.Skills(), ", "))
	}
	return tw.Flush()
}

func intentCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	res := e.search.Search(c.Context, query, filter.Expression{})
	return writeJSON(c.App.Writer, chiTransport.IntentToBody(res.Intent))
}

func statsCommand(c *cli.Context) error {
	if c.Int("top") < 0 {
		return errors.New("--top must be non-negative")
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	cands, err := e.source.Candidates(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, stats.Compute(cands, c.Int("top")))
}

func mcpCommand(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	return mcpTransport.NewServer(e.search, version.Version, e.logger).ServeStdio()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/scene"
	"github.com/ChicagoDave/citygen/pkg/scene2d"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/store"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

type generateOptions struct {
	save    bool
	scene2d bool
	seed    int64
	seedSet bool
	mode    string
}

// loadProject loads the project and folds in previously saved positions.
func loadProject(projectPath string) (*spec.Project, *store.FileStore, error) {
	p, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	st := store.ProjectFileStore(projectPath)
	snapshot, err := st.Snapshot(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("loading positions: %w", err)
	}
	p.POIs = generate.ApplySnapshot(p.POIs, snapshot)
	return p, st, nil
}

// runPass generates a layout, printing the config report when it is
// rejected.
func runPass(p *spec.Project, cfg spec.Config) (*generate.Result, error) {
	res, err := generate.New(cfg, generate.WithLogger(slog.Default())).Run(p.POIs)
	var cerr *generate.ConfigurationError
	if errors.As(err, &cerr) {
		printValidationReport(os.Stderr, cerr.Report)
	}
	return res, err
}

func runValidate(projectPath string) error {
	p, err := spec.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	report := validation.ValidateConfig(p.Config, p.POIs)
	printValidationReport(os.Stdout, report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(projectPath string, opts generateOptions) error {
	p, st, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	cfg := p.Config
	if opts.seedSet {
		cfg.RNGSeed = opts.seed
	}
	if opts.mode != "" {
		cfg.SpreadMode = spec.SpreadMode(opts.mode)
	}

	res, err := runPass(p, cfg)
	if err != nil {
		return err
	}
	if opts.save {
		if err := st.Upsert(context.Background(), res.Snapshot()); err != nil {
			return fmt.Errorf("saving positions: %w", err)
		}
		slog.Info("positions saved", "path", st.Path(), "count", len(res.Positions))
	}

	printMetrics(os.Stderr, res.Metrics)
	if opts.scene2d {
		return writeJSON(os.Stdout, scene2d.Assemble2D(p.Name, res))
	}
	output := map[string]any{
		"validation": res.Report,
		"document":   scene.Assemble(p.Name, res),
	}
	return writeJSON(os.Stdout, output)
}

func runPath(projectPath, fromArg, toArg string) error {
	from, err := geo.ParsePoint(fromArg)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := geo.ParsePoint(toArg)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	p, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	res, err := runPass(p, p.Config)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, res.Pathfinder().FindPath(from, to))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

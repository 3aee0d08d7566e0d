// Package ksa wires the update pipeline: mapping load, batched value
// fetch, per-entry update, and presentation save.
package ksa

import (
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/config"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/engine"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/mapping"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/sheets"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// UpdateOptions carries the command-line overrides for one run
type UpdateOptions struct {
	ConfigPath   string
	Presentation string // overrides powerpoint.file_path
	Output       string // overrides powerpoint.output_path
	DryRun       bool   // forces dry-run regardless of config
}

// sources bundles the two data-source roles; online they are the same
// Sheets client, offline both come from config.
type sources struct {
	values  sheets.ValueSource
	mapping sheets.MappingSource
}

func newSources(conf *config.Config) (sources, error) {
	if err := conf.ValidateSource(); err != nil {
		return sources{}, err
	}
	if conf.Offline {
		static := &sheets.StaticSource{Values: conf.Values, Rows: conf.Mapping}
		return sources{values: static, mapping: static}, nil
	}
	client, err := sheets.NewClient(
		conf.Google.SpreadsheetID,
		conf.Google.MappingSheet,
		conf.Google.AccessToken,
		conf.Google.APIKey,
	)
	if err != nil {
		return sources{}, err
	}
	return sources{values: client, mapping: client}, nil
}

// RunUpdate executes the full pipeline once and returns the report. The
// deck file is only written when at least one entry applied and dry-run
// is off; any fatal error surfaces before mutation reaches disk.
func RunUpdate(opts UpdateOptions) (*engine.Report, error) {
	conf, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	pptPath := conf.PowerPoint.FilePath
	if opts.Presentation != "" {
		pptPath = opts.Presentation
	}
	if pptPath == "" {
		return nil, errors.Wrap(errors.ErrMissingRequired, "powerpoint.file_path (or --presentation)")
	}

	output := conf.OutputPath()
	if opts.Presentation != "" && conf.PowerPoint.OutputPath == "" {
		output = opts.Presentation
	}
	if opts.Output != "" {
		output = opts.Output
	}

	dryRun := opts.DryRun || conf.DryRun
	if dryRun {
		log.Info("Running in dry-run mode, no changes will be written")
	}

	d, err := deck.Open(pptPath)
	if err != nil {
		return nil, err
	}
	log.Info("Opened presentation %s (%d slides)", pptPath, d.SlideCount())

	src, err := newSources(conf)
	if err != nil {
		return nil, err
	}

	rows, err := src.mapping.MappingRows()
	if err != nil {
		return nil, err
	}
	entries, rowErrs := mapping.Load(rows)
	if len(entries) == 0 && len(rowErrs) == 0 {
		log.Warn("No mapping rows found, nothing to do")
		return &engine.Report{DryRun: dryRun}, nil
	}
	log.Info("Loaded %d mapping entries (%d invalid rows)", len(entries), len(rowErrs))

	values, err := src.values.BatchGet(mapping.Ranges(entries))
	if err != nil {
		// Wholesale fetch failure is fatal: abort before any mutation.
		return nil, err
	}

	report := engine.Run(entries, rowErrs, values, d, engine.Options{
		DryRun:     dryRun,
		EmptyValue: conf.Defaults.EmptyValue,
		ErrorValue: conf.Defaults.ErrorValue,
	})

	if !dryRun && report.Applied() > 0 {
		if err := d.SaveTo(output); err != nil {
			return report, err
		}
		log.Info("Saved presentation to %s", output)
	}
	return report, nil
}

// ResolveDeckPath picks the presentation path for read-only commands:
// the flag wins, then the config file's powerpoint.file_path.
func ResolveDeckPath(configPath, flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	conf, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if conf.PowerPoint.FilePath == "" {
		return "", errors.Wrap(errors.ErrMissingRequired, "powerpoint.file_path (or --presentation)")
	}
	return conf.PowerPoint.FilePath, nil
}

// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package layers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/fallback"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/metrics"
	"github.com/tomtom215/skyguide/internal/models"
)

// Layer names.
const (
	Trending      = "l2"
	Collaborative = "l3"
	Neural        = "l4"
)

// Data source labels reported to clients. "fictional" marks a result served
// from the stored artifact instead of a fresh run on database rows.
const (
	DataSourceDatabase  = "database"
	DataSourceFictional = "fictional"
)

// Runner starts a child process. *compute.Invoker implements it.
type Runner interface {
	Run(ctx context.Context, cmd compute.Command, stdin []byte) (*compute.Output, error)
}

// Target identifies whose run a layer is serving.
type Target struct {
	UserID  int64
	Context *models.UserContext
}

// ForUser targets a bare explorer id.
func ForUser(id int64) Target {
	return Target{UserID: id}
}

// ForContext targets a resolved explorer context.
func ForContext(uc *models.UserContext) Target {
	if uc == nil {
		return Target{}
	}
	return Target{UserID: uc.ID, Context: uc}
}

// Result is one layer invocation.
type Result struct {
	Layer           string            `json:"layer"`
	Source          Source            `json:"source"`
	DataSource      string            `json:"data_source"`
	DBCount         int               `json:"db_count"`
	RequiredMinimum int               `json:"required_minimum"`
	RowsProcessed   int               `json:"total_rows_processed"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	Rows            []models.LayerRow `json:"rows"`
	// Selected is the row belonging to the target explorer. Only set by
	// layers that select per user.
	Selected        models.LayerRow `json:"data,omitempty"`
	ArtifactMissing bool            `json:"-"`
}

// Layer is the type-erased view of a Provider.
type Layer interface {
	Name() string
	Invoke(ctx context.Context, t Target) (*Result, error)
}

// ExtractFunc reads a layer's input rows.
type ExtractFunc[R any] func(ctx context.Context, t Target) ([]R, error)

// Provider runs one signal layer over rows of type R.
type Provider[R any] struct {
	name       string
	cfg        config.LayerConfig
	marker     string
	extract    ExtractFunc[R]
	store      *fallback.Store
	runner     Runner
	selectUser bool
}

// NewProvider builds a layer. The artifact location comes from cfg.OutputCSV.
func NewProvider[R any](name string, cfg config.LayerConfig, marker string, extract ExtractFunc[R], runner Runner) *Provider[R] {
	return &Provider[R]{
		name:    name,
		cfg:     cfg,
		marker:  marker,
		extract: extract,
		store:   fallback.New(cfg.OutputCSV),
		runner:  runner,
	}
}

// SelectUser makes Invoke pick the target explorer's row into Result.Selected.
func (p *Provider[R]) SelectUser() *Provider[R] {
	p.selectUser = true
	return p
}

// Name returns the layer name.
func (p *Provider[R]) Name() string {
	return p.name
}

// Extract reads the layer's input rows. A persistence failure is returned.
func (p *Provider[R]) Extract(ctx context.Context, t Target) ([]R, error) {
	rows, err := p.extract(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%s extract: %w", p.name, err)
	}
	return rows, nil
}

// Invoke extracts, gates on the configured minimum and returns either the
// stored artifact or the output of a fresh script run.
func (p *Provider[R]) Invoke(ctx context.Context, t Target) (*Result, error) {
	res := &Result{Layer: p.name, StartedAt: time.Now().UTC()}

	input, err := p.Extract(ctx, t)
	if err != nil {
		return nil, err
	}

	d := Decide(len(input), p.cfg.MinRows)
	res.Source = d.Source
	res.DBCount = d.Observed
	res.RequiredMinimum = d.Required
	metrics.RecordLayerDecision(p.name, string(d.Source))

	log := logging.Ctx(ctx).With().Str("layer", p.name).Logger()
	log.Debug().
		Int("observed", d.Observed).
		Int("required", d.Required).
		Str("source", string(d.Source)).
		Msg("Layer routed")

	if d.Source == SourceFallback {
		res.DataSource = DataSourceFictional
		res.Rows, err = p.store.Load()
		if errors.Is(err, fallback.ErrArtifactMissing) {
			log.Warn().Str("path", p.store.Path()).Msg("Fallback artifact missing")
			res.Rows = []models.LayerRow{}
			res.ArtifactMissing = true
			err = nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s fallback: %w", p.name, err)
		}
	} else {
		res.DataSource = DataSourceDatabase
		if err := p.compute(ctx, input, res); err != nil {
			return nil, err
		}
	}

	if p.selectUser {
		res.Selected = selectRow(res.Rows, t.UserID)
	}
	res.FinishedAt = time.Now().UTC()
	return res, nil
}

func (p *Provider[R]) compute(ctx context.Context, input []R, res *Result) error {
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode %s input: %w", p.name, err)
	}

	out, err := p.runner.Run(ctx, p.command(), payload)
	if err != nil {
		return err
	}
	res.RowsProcessed = out.RowsProcessed()

	switch p.cfg.OutputMode {
	case config.OutputModeFramed:
		doc, err := out.Result(p.marker)
		if err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		rows, err := decodeRows(doc)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", compute.ErrDecode, p.name, err)
		}
		if err := p.store.Save(rows); err != nil {
			return fmt.Errorf("%s refresh fallback artifact: %w", p.name, err)
		}
		res.Rows = rows
	default:
		// The script wrote the artifact itself.
		rows, err := p.store.Load()
		if err != nil {
			return fmt.Errorf("%s artifact after run: %w", p.name, err)
		}
		res.Rows = rows
	}
	return nil
}

// command builds the script invocation. The script runs from its own
// directory so relative output paths inside it resolve as expected.
func (p *Provider[R]) command() compute.Command {
	script := p.cfg.Script
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}

	cmd := compute.Command{
		Name:    "layer_" + p.name,
		Path:    script,
		Dir:     filepath.Dir(script),
		Env:     []string{"DATA_SOURCE=" + DataSourceDatabase},
		Timeout: p.cfg.Timeout,
	}
	if p.cfg.Interpreter != "" {
		cmd.Path = p.cfg.Interpreter
		cmd.Args = append(append([]string{}, p.cfg.InterpreterArgs...), script)
	}
	return cmd
}

// decodeRows decodes a JSON array of flat objects. Strings are kept as is,
// null becomes empty and any other value keeps its literal JSON text.
func decodeRows(doc []byte) ([]models.LayerRow, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.LayerRow, 0, len(raw))
	for _, obj := range raw {
		row := make(models.LayerRow, len(obj))
		for k, v := range obj {
			v = bytes.TrimSpace(v)
			switch {
			case len(v) == 0 || bytes.Equal(v, []byte("null")):
				row[k] = ""
			case v[0] == '"':
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					return nil, err
				}
				row[k] = s
			default:
				row[k] = string(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// selectRow returns the row whose User_ID matches userID, the first row when
// none does, or nil for no rows.
func selectRow(rows []models.LayerRow, userID int64) models.LayerRow {
	if len(rows) == 0 {
		return nil
	}
	id := strconv.FormatInt(userID, 10)
	for _, row := range rows {
		if row["User_ID"] == id {
			return row
		}
	}
	return rows[0]
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-hockey-leaders/internal/aggregator"
	"github.com/pable/go-hockey-leaders/internal/fetch"
	"github.com/pable/go-hockey-leaders/internal/flags"
	"github.com/pable/go-hockey-leaders/internal/model"
	"github.com/pable/go-hockey-leaders/internal/season"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

var kinds = []model.Kind{model.KindSkaters, model.KindGoalies}

func tableIDs() []string {
	return []string{cfg.Tables.Skaters, cfg.Tables.Goalies}
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func newFetchClient() *fetch.Client {
	c := &fetch.Client{
		UserAgent:   cfg.Fetch.UserAgent,
		Timeout:     cfg.Fetch.Timeout,
		MaxAttempts: cfg.Fetch.MaxAttempts,
	}
	if c.UserAgent == "" {
		c.UserAgent = fetch.DefaultUserAgent
	}
	if cfg.Fetch.CacheDir != "" {
		c.Cache = &fetch.Cache{Dir: cfg.Fetch.CacheDir}
	}
	return c
}

// loadFlags reads the citizenship table. A missing file is not fatal: every
// Total is then reported with a missing flag.
func loadFlags() *flags.Table {
	fl, err := flags.Load(cfg.FlagsFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.FlagsFile).Msg("flags unavailable")
		return flags.New(nil)
	}
	log.Debug().Int("players", fl.Len()).Msg("flags loaded")
	return fl
}

// buildDataset loads the season CSVs of one kind and appends career totals.
func buildDataset(kind model.Kind, fl *flags.Table) (*model.Dataset, error) {
	ds, err := season.Load(season.Options{
		Kind:        kind,
		Team:        cfg.Team.Short,
		DataDir:     cfg.DataDir,
		TableID:     cfg.TableID(kind),
		Drop:        cfg.Load.Drop,
		TimeColumns: cfg.Load.TimeColumns,
		Flags:       fl,
	})
	if err != nil {
		return nil, err
	}
	n, err := aggregator.AddTotals(ds, fl)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	log.Info().Str("kind", kind.String()).Int("seasons", len(ds.Seasons)).Int("players", n).Msg("career totals built")
	return ds, nil
}

// storedOrBuilt returns the stored dataset, building and saving it from the
// season CSVs when the store has none.
func storedOrBuilt(db *storage.DB, kind model.Kind, fl *flags.Table) (*model.Dataset, error) {
	ds, err := db.LoadDataset(kind, cfg.Team.Short)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	if ds != nil {
		return ds, nil
	}
	log.Info().Str("kind", kind.String()).Msg("no stored dataset, building from season files")
	ds, err = buildDataset(kind, fl)
	if err != nil {
		return nil, err
	}
	if err := db.SaveDataset(ds); err != nil {
		return nil, fmt.Errorf("save %s: %w", kind, err)
	}
	return ds, nil
}

// mustStored loads a dataset the user is expected to have aggregated.
func mustStored(db *storage.DB, kind model.Kind) (*model.Dataset, error) {
	ds, err := db.LoadDataset(kind, cfg.Team.Short)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	if ds == nil {
		return nil, fmt.Errorf("no %s data stored for %s; run 'hockeyleaders aggregate' first", kind, cfg.Team.Short)
	}
	return ds, nil
}

func parseKind(s string) (model.Kind, error) {
	k := model.ParseKind(s)
	if k == model.KindUnknown {
		return k, fmt.Errorf("unknown kind %q (want skaters or goalies)", s)
	}
	return k, nil
}

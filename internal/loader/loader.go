package loader

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/catalog"
	"github.com/cmm-group/benchmark-cli/internal/model"
)

// LoadAll loads every configured extract for every cataloged commodity.
// A missing optional source file is skipped with a warning; a per-file parse
// failure likewise. Loading is read-only and idempotent. Only a missing
// catalog aborts, and that happens before this function is reached.
func LoadAll(cat *catalog.Catalog, tradeDir, usgsDir string) *model.Dataset {
	ds := &model.Dataset{
		Trade:   make(map[string][]model.TradeFlowRecord),
		Salient: make(map[string][]model.SalientRecord),
		World:   make(map[string][]model.WorldProductionRecord),
	}

	keys := make([]string, 0, len(cat.Commodities))
	for k := range cat.Commodities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cfg := cat.Commodities[key]

		if cfg.TradeFile != "" {
			path := filepath.Join(tradeDir, cfg.TradeFile)
			if recs, ok := loadOptional(path, key, LoadTrade); ok {
				ds.Trade[key] = recs
			}
		}

		var salient []model.SalientRecord
		for _, fname := range cfg.SalientFiles {
			path := filepath.Join(usgsDir, fname)
			if recs, ok := loadOptional(path, key, LoadSalient); ok {
				salient = append(salient, recs...)
			}
		}
		if len(salient) > 0 {
			ds.Salient[key] = salient
		}

		var world []model.WorldProductionRecord
		for _, fname := range cfg.WorldFiles {
			path := filepath.Join(usgsDir, fname)
			if recs, ok := loadOptional(path, key, LoadWorldProduction); ok {
				world = append(world, recs...)
			}
		}
		if len(world) > 0 {
			ds.World[key] = world
		}
	}

	return ds
}

// loadOptional runs one file loader, downgrading missing files and parse
// failures to warnings.
func loadOptional[T any](path, key string, load func(string, string) ([]T, error)) ([]T, bool) {
	if _, err := os.Stat(path); err != nil {
		zap.L().Warn("source file not found, skipping",
			zap.String("commodity", key),
			zap.String("file", path))
		return nil, false
	}
	recs, err := load(path, key)
	if err != nil {
		zap.L().Warn("source file unreadable, skipping",
			zap.String("commodity", key),
			zap.String("file", path),
			zap.Error(err))
		return nil, false
	}
	return recs, true
}

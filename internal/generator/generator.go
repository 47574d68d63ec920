package generator

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/catalog"
	"github.com/cmm-group/benchmark-cli/internal/model"
)

// Generator turns loaded records into QA pairs. It is stateless beyond the
// catalog reference; commodities are processed independently.
type Generator struct {
	cat *catalog.Catalog
}

// New returns a Generator for the given catalog.
func New(cat *catalog.Catalog) *Generator {
	return &Generator{cat: cat}
}

// GenerateAll produces the flat list of QA pairs across all commodities and
// templates. Output order is deterministic: commodities are processed in
// sorted key order and every grouped iteration is over sorted keys.
func (g *Generator) GenerateAll(ds *model.Dataset) []model.QAPair {
	keys := ds.CommodityKeys()
	sort.Strings(keys)

	var all []model.QAPair
	for _, key := range keys {
		log := zap.L().With(zap.String("commodity", key))

		if recs, ok := ds.Trade[key]; ok {
			pairs := g.generateTradeQA(key, recs)
			log.Info("generated trade QA pairs", zap.Int("count", len(pairs)))
			all = append(all, pairs...)
		}
		if recs, ok := ds.Salient[key]; ok {
			pairs := g.generateSalientQA(key, recs)
			log.Info("generated salient QA pairs", zap.Int("count", len(pairs)))
			all = append(all, pairs...)
		}
		if recs, ok := ds.World[key]; ok {
			pairs := g.generateWorldQA(key, recs)
			log.Info("generated world production QA pairs", zap.Int("count", len(pairs)))
			all = append(all, pairs...)
		}
	}

	zap.L().Info("total QA pairs generated", zap.Int("count", len(all)))
	return all
}

// sortedKeys returns the map's keys in sorted order, for deterministic
// iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedFieldNames returns a salient record's field names in sorted order.
func sortedFieldNames(fields map[string]model.FieldValue) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// copySource shallow-copies a source_data map before a template adds its own
// entries.
func copySource(src map[string]any) map[string]any {
	out := make(map[string]any, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Package catalog describes which commodities the pipeline covers and where
// their raw extracts live. The catalog is the only input whose absence is
// fatal: everything else degrades to a warning.
package catalog

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Commodity holds per-commodity metadata and source file names. Trade files
// are resolved against the trade data directory, salient and world files
// against the USGS data directory.
type Commodity struct {
	DisplayName  string   `yaml:"display_name"`
	Symbol       string   `yaml:"symbol"`
	HSCodes      []string `yaml:"hs_codes"`
	TradeFile    string   `yaml:"trade_file"`
	SalientFiles []string `yaml:"salient_files"`
	WorldFiles   []string `yaml:"world_files"`
}

// Catalog maps commodity key to its configuration.
type Catalog struct {
	Commodities map[string]Commodity `yaml:"commodities"`
}

// Load reads a catalog YAML file. A missing or unreadable file is fatal
// upstream, so the error names the path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if len(c.Commodities) == 0 {
		return nil, eris.Errorf("catalog: %s defines no commodities", path)
	}
	return &c, nil
}

// DisplayName returns the display name for a commodity key, falling back to
// a title-cased form of the key itself.
func (c *Catalog) DisplayName(key string) string {
	if cfg, ok := c.Commodities[key]; ok && cfg.DisplayName != "" {
		return cfg.DisplayName
	}
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Default returns the built-in catalog covering the eight tracked
// commodities, used when no catalog file is configured.
func Default() *Catalog {
	return &Catalog{Commodities: map[string]Commodity{
		"cobalt": {
			DisplayName: "Cobalt",
			Symbol:      "Co",
			HSCodes:     []string{"8105", "282200"},
			TradeFile:   "cobalt_trade_data.csv",
			SalientFiles: []string{
				"2023/cobalt_mcs2023-cobal_salient.csv",
				"2024/cobalt_mcs2024-cobal_salient.csv",
			},
			WorldFiles: []string{
				"2023/cobalt_mcs2023-cobal_world.csv",
				"2024/cobalt_mcs2024-cobal_world.csv",
			},
		},
		"copper": {
			DisplayName: "Copper",
			Symbol:      "Cu",
			HSCodes:     []string{"7402", "7403"},
			TradeFile:   "copper_trade_data.csv",
			SalientFiles: []string{
				"2023/copper_mcs2023-coppe_salient.csv",
				"2024/copper_mcs2024-coppe_salient.csv",
			},
			WorldFiles: []string{
				"2023/copper_mcs2023-coppe_world.csv",
				"2024/copper_mcs2024-coppe_world.csv",
			},
		},
		"gallium": {
			DisplayName: "Gallium",
			Symbol:      "Ga",
			HSCodes:     []string{"811292"},
			TradeFile:   "gallium_trade_data.csv",
			SalientFiles: []string{
				"2023/gallium_mcs2023-galli_salient.csv",
				"2024/gallium_mcs2024-galli_salient.csv",
			},
			WorldFiles: []string{
				"2023/gallium_mcs2023-galli_world.csv",
				"2024/gallium_mcs2024-galli_world.csv",
			},
		},
		"graphite": {
			DisplayName: "Graphite",
			Symbol:      "Gr",
			HSCodes:     []string{"250410", "250490"},
			TradeFile:   "graphite_trade_data.csv",
			SalientFiles: []string{
				"2023/graphite_mcs2023-graph_salient.csv",
				"2024/graphite_mcs2024-graph_salient.csv",
			},
			WorldFiles: []string{
				"2023/graphite_mcs2023-graph_world.csv",
				"2024/graphite_mcs2024-graph_world.csv",
			},
		},
		"heavy_ree": {
			DisplayName: "Heavy Rare Earth Elements",
			Symbol:      "HREE",
			HSCodes:     []string{"284690"},
			TradeFile:   "heavy_ree_trade_data.csv",
			SalientFiles: []string{
				"2023/heavy_ree_mcs2023-raree_salient.csv",
				"2024/heavy_ree_mcs2024-raree_salient.csv",
			},
			WorldFiles: []string{
				"2023/heavy_ree_mcs2023-raree_world.csv",
				"2024/heavy_ree_mcs2024-raree_world.csv",
			},
		},
		"light_ree": {
			DisplayName: "Light Rare Earth Elements",
			Symbol:      "LREE",
			HSCodes:     []string{"284610"},
			TradeFile:   "light_ree_trade_data.csv",
			SalientFiles: []string{
				"2023/light_ree_mcs2023-raree_salient.csv",
				"2024/light_ree_mcs2024-raree_salient.csv",
			},
			WorldFiles: []string{
				"2023/light_ree_mcs2023-raree_world.csv",
				"2024/light_ree_mcs2024-raree_world.csv",
			},
		},
		"lithium": {
			DisplayName: "Lithium",
			Symbol:      "Li",
			HSCodes:     []string{"282520", "283691", "253090"},
			TradeFile:   "lithium_trade_data.csv",
			SalientFiles: []string{
				"2023/lithium_mcs2023-lithi_salient.csv",
				"2024/lithium_mcs2024-lithi_salient.csv",
			},
			WorldFiles: []string{
				"2023/lithium_mcs2023-lithi_world.csv",
				"2024/lithium_mcs2024-lithi_world.csv",
			},
		},
		"nickel": {
			DisplayName: "Nickel",
			Symbol:      "Ni",
			HSCodes:     []string{"7501", "7502", "281122"},
			TradeFile:   "nickel_trade_data.csv",
			SalientFiles: []string{
				"2023/nickel_mcs2023-nicke_salient.csv",
				"2024/nickel_mcs2024-nicke_salient.csv",
			},
			WorldFiles: []string{
				"2023/nickel_mcs2023-nicke_world.csv",
				"2024/nickel_mcs2024-nicke_world.csv",
			},
		},
	}}
}

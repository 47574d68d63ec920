package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/cmm-group/benchmark-cli/internal/catalog"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTrade(t *testing.T) {
	path := writeTempCSV(t, "trade.csv",
		"query_year,commodity_name,hs_code,reporterCode,reporterDesc,partnerCode,partnerDesc,flowCode,primaryValue,netWgt,qty,qtyUnitAbbr\n"+
			"2023,cobalt,810520,842,USA,0,World,M,\"1,500,000\",250000,250000,kg\n"+
			"2023,cobalt,810520,842,USA,180,Dem. Rep. of the Congo,M,900000,,,kg\n")

	recs, err := LoadTrade(path, "cobalt")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, "cobalt", r.Commodity)
	assert.Equal(t, "810520", r.HSCode)
	assert.Equal(t, "842", r.ReporterCode)
	assert.Equal(t, "0", r.PartnerCode)
	assert.Equal(t, "M", r.FlowCode)
	assert.Equal(t, 2023, r.Year)
	require.NotNil(t, r.PrimaryValue)
	assert.InDelta(t, 1_500_000, *r.PrimaryValue, 1e-9)
	require.NotNil(t, r.NetWeight)
	assert.InDelta(t, 250_000, *r.NetWeight, 1e-9)

	assert.Nil(t, recs[1].NetWeight)
	assert.Nil(t, recs[1].Quantity)
}

func TestLoadTrade_SkipsMalformedYear(t *testing.T) {
	path := writeTempCSV(t, "trade.csv",
		"query_year,reporterCode,partnerCode,flowCode,primaryValue\n"+
			"not-a-year,842,0,M,100\n"+
			"2022,842,0,M,200\n")

	recs, err := LoadTrade(path, "nickel")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2022, recs[0].Year)
}

func TestLoadSalient(t *testing.T) {
	path := writeTempCSV(t, "salient.csv",
		"DataSource,Commodity,Year,USprod_mine_t,Price_dlb,NIR_pct\n"+
			"MCS2024,cobalt,2023,500,15.2,>75\n"+
			"MCS2024,cobalt,2022,W,14.1,72\n"+
			",,,,\n")

	recs, err := LoadSalient(path, "cobalt")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, "MCS2024", r.DataSource)
	assert.Equal(t, 2023, r.Year)

	v, ok := r.Fields["USprod_mine_t"].Numeric()
	require.True(t, ok)
	assert.InDelta(t, 500, v, 1e-9)

	nir, ok := r.Fields["NIR_pct"].Numeric()
	require.True(t, ok)
	assert.InDelta(t, 75, nir, 1e-9)
	assert.Equal(t, ">75", r.Fields["NIR_pct"].Raw)

	// withheld cell keeps only its marker
	_, ok = recs[1].Fields["USprod_mine_t"].Numeric()
	assert.False(t, ok)
	marker, isMarker := recs[1].Fields["USprod_mine_t"].Marker()
	assert.True(t, isMarker)
	assert.Equal(t, "W", marker)
}

func TestLoadWorldProduction(t *testing.T) {
	path := writeTempCSV(t, "world.csv",
		"Source,Country,Type,Prod_t_2022,Prod_t_est_2023,Reserves_t,Prod_notes,Reserves_notes\n"+
			"MCS2024,Dem. Rep. of the Congo,mine,130000,170000,6000000,,\n"+
			"MCS2024,World,mine,190000,230000,11000000,rounded,\n"+
			"MCS2024,Cuba,mine,W,--,440000,withheld,\n")

	recs, err := LoadWorldProduction(path, "cobalt")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	r := recs[0]
	assert.Equal(t, "Dem. Rep. of the Congo", r.Country)
	assert.Equal(t, "2022", r.Year1Label)
	assert.Equal(t, "2023 (est.)", r.Year2Label)
	require.NotNil(t, r.ProductionYear1)
	assert.InDelta(t, 130000, *r.ProductionYear1, 1e-9)
	require.NotNil(t, r.Reserves)
	assert.InDelta(t, 6_000_000, *r.Reserves, 1e-9)

	assert.Nil(t, recs[2].ProductionYear1)
	assert.Nil(t, recs[2].ProductionYear2)
	assert.Equal(t, "withheld", recs[2].ProductionNotes)
}

func TestLoadTrade_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trade.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("data")
	require.NoError(t, err)
	header := sheet.AddRow()
	for _, col := range []string{"query_year", "reporterCode", "partnerCode", "flowCode", "primaryValue"} {
		header.AddCell().Value = col
	}
	row := sheet.AddRow()
	for _, val := range []string{"2023", "842", "0", "X", "7500000"} {
		row.AddCell().Value = val
	}
	require.NoError(t, f.Save(path))

	recs, err := LoadTrade(path, "lithium")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].FlowCode)
	require.NotNil(t, recs[0].PrimaryValue)
	assert.InDelta(t, 7_500_000, *recs[0].PrimaryValue, 1e-9)
}

func TestLoadAll_MissingFilesSkipped(t *testing.T) {
	cat := &catalog.Catalog{Commodities: map[string]catalog.Commodity{
		"cobalt": {
			DisplayName:  "Cobalt",
			TradeFile:    "missing_trade.csv",
			SalientFiles: []string{"missing_salient.csv"},
			WorldFiles:   []string{"missing_world.csv"},
		},
	}}

	ds := LoadAll(cat, t.TempDir(), t.TempDir())
	assert.Empty(t, ds.Trade)
	assert.Empty(t, ds.Salient)
	assert.Empty(t, ds.World)
}

func TestLoadAll(t *testing.T) {
	tradeDir := t.TempDir()
	usgsDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tradeDir, "trade.csv"),
		[]byte("query_year,reporterCode,partnerCode,flowCode,primaryValue\n2023,842,0,M,100\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(usgsDir, "salient.csv"),
		[]byte("DataSource,Commodity,Year,Price_dlb\nMCS2024,nickel,2023,8.5\n"), 0o644))

	cat := &catalog.Catalog{Commodities: map[string]catalog.Commodity{
		"nickel": {
			DisplayName:  "Nickel",
			TradeFile:    "trade.csv",
			SalientFiles: []string{"salient.csv"},
		},
	}}

	ds := LoadAll(cat, tradeDir, usgsDir)
	assert.Len(t, ds.Trade["nickel"], 1)
	assert.Len(t, ds.Salient["nickel"], 1)
}

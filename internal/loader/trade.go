package loader

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// LoadTrade loads a UN Comtrade trade flow extract into typed records.
// Rows without a parsable year are skipped; everything else is carried
// through with optional numeric fields normalized.
func LoadTrade(path, commodityKey string) ([]model.TradeFlowRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	records := make([]model.TradeFlowRecord, 0, len(t.rows))
	for _, row := range t.rows {
		year, err := strconv.Atoi(t.getFirst(row, "query_year", "refYear"))
		if err != nil {
			continue // malformed row
		}
		commodity := t.get(row, "commodity_name")
		if commodity == "" {
			commodity = commodityKey
		}
		records = append(records, model.TradeFlowRecord{
			Commodity:    commodity,
			HSCode:       t.getFirst(row, "hs_code", "cmdCode"),
			ReporterCode: t.get(row, "reporterCode"),
			ReporterDesc: t.get(row, "reporterDesc"),
			PartnerCode:  t.get(row, "partnerCode"),
			PartnerDesc:  t.get(row, "partnerDesc"),
			FlowCode:     t.get(row, "flowCode"),
			Year:         year,
			PrimaryValue: numericPtr(t.get(row, "primaryValue")),
			NetWeight:    numericPtr(t.get(row, "netWgt")),
			Quantity:     numericPtr(t.get(row, "qty")),
			QtyUnit:      t.get(row, "qtyUnitAbbr"),
		})
	}

	zap.L().Info("loaded trade records",
		zap.String("commodity", commodityKey),
		zap.String("file", path),
		zap.Int("rows", len(records)))
	return records, nil
}

// Package evaluation grades generated answers against gold-standard QA
// pairs and aggregates the results into reports.
package evaluation

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// LoadGold reads gold QA pairs from a JSONL file. Malformed lines and
// entries without an id are skipped with a warning, never fatal.
func LoadGold(path string) ([]model.GoldQAPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "evaluation: opening gold file %s", path)
	}
	defer f.Close()

	var pairs []model.GoldQAPair
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var pair model.GoldQAPair
		if err := json.Unmarshal(line, &pair); err != nil {
			zap.L().Warn("skipping invalid gold QA line",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		if pair.ID == "" {
			zap.L().Warn("skipping gold QA line without id", zap.Int("line", lineNo))
			continue
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "evaluation: reading gold file %s", path)
	}

	zap.L().Info("loaded gold QA pairs",
		zap.Int("count", len(pairs)),
		zap.String("path", path))
	return pairs, nil
}

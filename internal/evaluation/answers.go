package evaluation

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// LoadAnswers reads generated answers from a JSONL of {gold_id, answer}
// objects and returns them keyed by gold id. A gold pair with no matching
// answer is scored against empty text by the caller.
func LoadAnswers(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "evaluation: opening answers file %s", path)
	}
	defer f.Close()

	answers := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ans model.GeneratedAnswer
		if err := json.Unmarshal(line, &ans); err != nil {
			zap.L().Warn("skipping invalid answer line",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		if ans.GoldID == "" {
			zap.L().Warn("skipping answer line without gold_id", zap.Int("line", lineNo))
			continue
		}
		answers[ans.GoldID] = ans.Answer
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "evaluation: reading answers file %s", path)
	}

	zap.L().Info("loaded generated answers",
		zap.Int("count", len(answers)),
		zap.String("path", path))
	return answers, nil
}

// Package corpus serializes QA pairs into chat-format JSONL training files.
package corpus

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// DefaultSystemPrompt is the analyst persona prepended to every training
// example unless config overrides it.
const DefaultSystemPrompt = "You are an expert analyst specializing in critical minerals and materials (CMM) " +
	"supply chains. You provide accurate, data-driven answers about international trade " +
	"flows, production statistics, reserves, prices, and supply chain dependencies for " +
	"minerals including lithium, cobalt, nickel, rare earth elements, graphite, gallium, " +
	"germanium, and copper. When citing statistics, include the year, units, and source " +
	"context. If data is unavailable or withheld, state that clearly."

// ToChatExample converts one QA pair into a system/user/assistant triple.
func ToChatExample(pair model.QAPair, systemPrompt string) model.ChatExample {
	return model.ChatExample{
		Messages: []model.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: pair.Question},
			{Role: "assistant", Content: pair.Answer},
		},
	}
}

// WriteJSONL writes pairs as chat examples, one JSON object per line, and
// returns the number of examples written.
func WriteJSONL(pairs []model.QAPair, path, systemPrompt string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, eris.Wrapf(err, "corpus: creating directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "corpus: creating %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	count := 0
	for _, pair := range pairs {
		line, err := json.Marshal(ToChatExample(pair, systemPrompt))
		if err != nil {
			return count, eris.Wrap(err, "corpus: marshaling chat example")
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return count, eris.Wrapf(err, "corpus: writing %s", path)
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return count, eris.Wrapf(err, "corpus: flushing %s", path)
	}
	return count, nil
}

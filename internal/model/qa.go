package model

// Complexity levels for generated and gold QA pairs.
const (
	LevelL1 = "L1"
	LevelL2 = "L2"
	LevelL3 = "L3"
	LevelL4 = "L4"
)

// QAPair is a generated question-answer pair for training. SourceData maps
// every literal value quoted in the answer back to the record(s) it came
// from; an answer must never state a number that is not in SourceData.
type QAPair struct {
	Question        string         `json:"question"`
	Answer          string         `json:"answer"`
	Commodity       string         `json:"commodity"`
	ComplexityLevel string         `json:"complexity_level"` // L1-L3
	TemplateID      string         `json:"template_id"`
	SourceData      map[string]any `json:"source_data"`
}

// StratumKey is the composite stratification key used by the splitter.
func (p QAPair) StratumKey() string {
	return p.Commodity + "_" + p.ComplexityLevel
}

// ChatMessage is a single message in a chat-format training example.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatExample is a full chat-format training example.
type ChatExample struct {
	Messages []ChatMessage `json:"messages"`
}

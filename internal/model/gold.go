package model

// GoldQAPair is an expert-authored reference QA pair with explicit grading
// criteria, loaded from an external JSONL file.
type GoldQAPair struct {
	ID                  string   `json:"id"`
	Question            string   `json:"question"`
	ReferenceAnswer     string   `json:"reference_answer"`
	ComplexityLevel     string   `json:"complexity_level"` // L1-L4
	Subdomain           string   `json:"subdomain"`        // e.g. "trade_flow", "production"
	Commodity           string   `json:"commodity"`
	TemporalStratum     string   `json:"temporal_stratum,omitempty"` // "A" (historical) or "B" (recent)
	RequiredElements    []string `json:"required_elements"`
	DisqualifyingErrors []string `json:"disqualifying_errors"`
}

// GeneratedAnswer is one model answer produced by the external inference
// collaborator, keyed back to its gold pair.
type GeneratedAnswer struct {
	GoldID string `json:"gold_id"`
	Answer string `json:"answer"`
}

// ScoreResult grades one generated answer against one gold pair.
// Score is on the five-point rubric {0, 0.25, 0.5, 0.75, 1.0}.
type ScoreResult struct {
	GoldID          string  `json:"gold_id"`
	Score           float64 `json:"score"`
	RougeL          float64 `json:"rouge_l"`
	GeneratedAnswer string  `json:"generated_answer"`
	Reasoning       string  `json:"reasoning"`
}

// EvaluationReport aggregates individual scores into group-level summaries.
type EvaluationReport struct {
	RunID             string             `json:"run_id"`
	ModelID           string             `json:"model_id"`
	AdapterPath       string             `json:"adapter_path,omitempty"`
	TotalQuestions    int                `json:"total_questions"`
	MeanScore         float64            `json:"mean_score"`
	MeanRougeL        float64            `json:"mean_rouge_l"`
	ScoresByLevel     map[string]float64 `json:"scores_by_level"`
	ScoresBySubdomain map[string]float64 `json:"scores_by_subdomain"`
	ScoresByCommodity map[string]float64 `json:"scores_by_commodity"`
	IndividualScores  []ScoreResult      `json:"individual_scores"`
}

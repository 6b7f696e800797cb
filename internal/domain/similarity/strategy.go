package similarity

// Strategy identifies how question texts are compared.
type Strategy string

const (
	// StrategyStatistical fits a dependency-free TF-IDF model per call.
	StrategyStatistical Strategy = "statistical"
	// StrategyEmbedding uses a pretrained sentence-embedding model.
	StrategyEmbedding Strategy = "embedding"
	// StrategyLLM delegates the judgement to a chat model.
	StrategyLLM Strategy = "llm"
)

// Valid reports whether the strategy is one of the supported values.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyStatistical, StrategyEmbedding, StrategyLLM:
		return true
	default:
		return false
	}
}

// DefaultThreshold is the minimum similarity score for two questions to be
// considered equivalent.
const DefaultThreshold = 0.7

package strategy

// Scores maps symbols to accumulated scores. Missing symbols read as zero and
// Symbols reports keys in first-insertion order.
type Scores struct {
	order  []string
	values map[string]float64
}

func NewScores() *Scores {
	return &Scores{values: make(map[string]float64)}
}

// Add accumulates v into symbol's score.
func (s *Scores) Add(symbol string, v float64) {
	if _, ok := s.values[symbol]; !ok {
		s.order = append(s.order, symbol)
	}
	s.values[symbol] += v
}

func (s *Scores) Get(symbol string) float64 {
	return s.values[symbol]
}

func (s *Scores) Has(symbol string) bool {
	_, ok := s.values[symbol]
	return ok
}

func (s *Scores) Len() int {
	return len(s.order)
}

func (s *Scores) Symbols() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Map returns a copy of the scores.
func (s *Scores) Map() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

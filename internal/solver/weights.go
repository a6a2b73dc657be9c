package solver

// WeightSource supplies the optional per-guess frequency multiplier
type WeightSource interface {
	Weight(word string) (float64, bool)
}

// WeightTable is an in-memory WeightSource
type WeightTable map[string]float64

func (t WeightTable) Weight(word string) (float64, bool) {
	v, ok := t[word]
	return v, ok
}

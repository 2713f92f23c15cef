package diagnosis

// SymptomSet is an unordered set of symptom ids.
type SymptomSet map[uint]struct{}

func NewSymptomSet(ids []uint) SymptomSet {
	s := make(SymptomSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SymptomSet) Len() int { return len(s) }

func (s SymptomSet) Contains(id uint) bool {
	_, ok := s[id]
	return ok
}

// ContainsAll reports whether every id in required is in s.
func (s SymptomSet) ContainsAll(required []uint) bool {
	for _, id := range required {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

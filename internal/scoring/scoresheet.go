package scoring

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abhisek/aipath/internal/careers"
)

// ScoreSheet holds the accumulated score of every career, indexed by
// careers.ID. The zero value has all four careers at 0.
type ScoreSheet [careers.Count]int

// Get returns the score of career id.
func (s ScoreSheet) Get(id careers.ID) int {
	if !id.Valid() {
		return 0
	}
	return s[id]
}

// Max returns the highest score on the sheet.
func (s ScoreSheet) Max() int {
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Total returns the sum of all scores.
func (s ScoreSheet) Total() int {
	t := 0
	for _, v := range s {
		t += v
	}
	return t
}

// Leader returns the career with the strictly greatest score. Ties go to
// the career that comes first in enumeration order.
func (s ScoreSheet) Leader() careers.ID {
	best := careers.Researcher
	for _, id := range careers.All() {
		if s[id] > s[best] {
			best = id
		}
	}
	return best
}

// Fraction returns score/max for career id in [0, 1]. It is 0 when every
// score is 0.
func (s ScoreSheet) Fraction(id careers.ID) float64 {
	m := s.Max()
	if m <= 0 {
		return 0
	}
	return float64(s.Get(id)) / float64(m)
}

// Standing is one row of a ranked score sheet.
type Standing struct {
	Career careers.ID `json:"career" yaml:"career"`
	Score  int        `json:"score" yaml:"score"`
}

// Ranked returns careers ordered by score descending. Equal scores keep
// enumeration order.
func (s ScoreSheet) Ranked() []Standing {
	out := make([]Standing, 0, careers.Count)
	for _, id := range careers.All() {
		out = append(out, Standing{Career: id, Score: s[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Map returns the sheet keyed by career wire identifier.
func (s ScoreSheet) Map() map[string]int {
	m := make(map[string]int, careers.Count)
	for _, id := range careers.All() {
		m[id.String()] = s[id]
	}
	return m
}

// MarshalJSON encodes the sheet as an object keyed by career identifier.
func (s ScoreSheet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes an object keyed by career identifier. Careers
// absent from the object score 0.
func (s *ScoreSheet) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out, err := SheetFromMap(m)
	if err != nil {
		return fmt.Errorf("decode score sheet: %w", err)
	}
	*s = out
	return nil
}

// SheetFromMap is the inverse of Map. Careers absent from m score 0.
func SheetFromMap(m map[string]int) (ScoreSheet, error) {
	var out ScoreSheet
	for k, v := range m {
		id, err := careers.Parse(k)
		if err != nil {
			return ScoreSheet{}, err
		}
		if v < 0 {
			return ScoreSheet{}, fmt.Errorf("negative score %d for %s", v, k)
		}
		out[id] = v
	}
	return out, nil
}

package careers

import "fmt"

// ID identifies one of the four career archetypes.
// The declaration order is significant: it is the tie-break order used when
// two careers end an assessment with the same score.
type ID int

const (
	Researcher ID = iota
	DataScientist
	NLPEngineer
	PromptEngineer
)

// Count is the number of career archetypes.
const Count = 4

// All returns every career in enumeration order.
func All() []ID {
	return []ID{Researcher, DataScientist, NLPEngineer, PromptEngineer}
}

// String returns the wire identifier, e.g. "data_scientist".
func (id ID) String() string {
	switch id {
	case Researcher:
		return "researcher"
	case DataScientist:
		return "data_scientist"
	case NLPEngineer:
		return "nlp_engineer"
	case PromptEngineer:
		return "prompt_engineer"
	default:
		return fmt.Sprintf("career(%d)", int(id))
	}
}

// Valid reports whether id is one of the four known careers.
func (id ID) Valid() bool {
	return id >= Researcher && id <= PromptEngineer
}

// Parse maps a wire identifier back to its ID.
func Parse(s string) (ID, error) {
	for _, id := range All() {
		if id.String() == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown career %q", s)
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as their
// wire identifiers in JSON and YAML.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid career id %d", int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// DisplayName returns the profile title for a career.
func DisplayName(id ID) string {
	if !id.Valid() {
		return id.String()
	}
	return profiles[id].Title
}

package domain

import "fmt"

// StepID identifies a wizard step. Steps are ordered.
type StepID int

const (
	StepServiceSelection StepID = iota
	StepDateSelection
	StepClientInformation
	StepConfirmation
	StepSuccess
)

// FirstStep and LastStep bound navigation
const (
	FirstStep = StepServiceSelection
	LastStep  = StepSuccess
)

var stepNames = map[StepID]string{
	StepServiceSelection:  "SERVICE_SELECTION",
	StepDateSelection:     "DATE_SELECTION",
	StepClientInformation: "CLIENT_INFORMATION",
	StepConfirmation:      "CONFIRMATION",
	StepSuccess:           "SUCCESS",
}

// AllSteps lists steps in navigation order
var AllSteps = []StepID{
	StepServiceSelection,
	StepDateSelection,
	StepClientInformation,
	StepConfirmation,
	StepSuccess,
}

// IsValid returns true if the step is one of the known wizard steps
func (s StepID) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

// String returns the upper-snake name of the step
func (s StepID) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s StepID) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *StepID) UnmarshalText(text []byte) error {
	step, err := ParseStepID(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// ParseStepID converts an upper-snake step name into a StepID
func ParseStepID(name string) (StepID, error) {
	for id, n := range stepNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

// StepSet is a set of completed steps
type StepSet uint8

// Add returns the set with step included
func (s StepSet) Add(step StepID) StepSet {
	if !step.IsValid() {
		return s
	}
	return s | 1<<uint(step)
}

// Has returns true if step is in the set
func (s StepSet) Has(step StepID) bool {
	if !step.IsValid() {
		return false
	}
	return s&(1<<uint(step)) != 0
}

// Steps returns the members of the set in navigation order
func (s StepSet) Steps() []StepID {
	steps := make([]StepID, 0, len(AllSteps))
	for _, step := range AllSteps {
		if s.Has(step) {
			steps = append(steps, step)
		}
	}
	return steps
}

// Len returns the number of steps in the set
func (s StepSet) Len() int {
	return len(s.Steps())
}

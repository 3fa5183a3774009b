package ruleset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration matches every ConfigError with errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// ValidationError represents a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConfigError is returned before any trial runs when a rule set or
// simulation request is unusable.
type ConfigError struct {
	Errors []ValidationError
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError wraps validation errors, returning nil when there are none.
func NewConfigError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ConfigError{Errors: errs}
}

// Validate returns a list of validation errors (empty = valid).
func (s *Spec) Validate() []ValidationError {
	var errs []ValidationError

	if s.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "must not be empty"})
	}

	minFace := s.minFace()
	if minFace < 0 {
		errs = append(errs, ValidationError{Field: "min_face", Message: "must not be negative"})
	}

	maxFaces := 0
	if len(s.Dice) == 0 {
		errs = append(errs, ValidationError{Field: "dice", Message: "at least one die is required"})
	}
	for i, d := range s.Dice {
		if d.Faces < 2 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("dice[%d].faces", i),
				Message: fmt.Sprintf("die needs at least 2 faces, got %d", d.Faces),
			})
		}
		if d.Count < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("dice[%d].count", i),
				Message: fmt.Sprintf("count must be positive, got %d", d.Count),
			})
		}
		maxFaces = max(maxFaces, d.Faces)
	}

	switch s.BustPolicy {
	case "", BustGame, BustTurn:
	default:
		errs = append(errs, ValidationError{
			Field:   "bust_policy",
			Message: fmt.Sprintf("unknown policy %q (want game or turn)", s.BustPolicy),
		})
	}

	if s.Bust != nil {
		if len(s.Bust.Faces) > 0 && s.Bust.MinCount < 1 {
			errs = append(errs, ValidationError{Field: "bust.min_count", Message: "must be at least 1"})
		}
		for _, f := range s.Bust.Faces {
			if f < minFace || f > minFace+maxFaces-1 {
				errs = append(errs, ValidationError{
					Field:   "bust.faces",
					Message: fmt.Sprintf("face %d is not on any die", f),
				})
			}
		}
	}

	switch s.Scoring.Mode {
	case ScoreSum, ScorePips:
	case ScoreTable:
		if len(s.Scoring.Table) == 0 {
			errs = append(errs, ValidationError{Field: "scoring.table", Message: "table mode needs at least one entry"})
		}
		for face, pts := range s.Scoring.Table {
			if pts < 0 {
				errs = append(errs, ValidationError{
					Field:   "scoring.table",
					Message: fmt.Sprintf("face %d scores %d, points must not be negative", face, pts),
				})
			}
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "scoring.mode",
			Message: fmt.Sprintf("unknown mode %q (want sum, pips or table)", s.Scoring.Mode),
		})
	}

	if s.MaxTurns < 0 {
		errs = append(errs, ValidationError{Field: "max_turns", Message: "must not be negative"})
	}
	if s.MaxTurns == 0 && !s.SetAside {
		errs = append(errs, ValidationError{
			Field:   "max_turns",
			Message: "a turn cap is required unless dice are set aside",
		})
	}

	if s.Ceiling <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ceiling",
			Message: fmt.Sprintf("ceiling %d is unreachable, must be positive", s.Ceiling),
		})
	}

	return errs
}

// Validate checks a compiled rule set, including the ceiling bounds.
func (r *RuleSet) Validate() []ValidationError {
	var errs []ValidationError

	if len(r.Pool) == 0 {
		errs = append(errs, ValidationError{Field: "dice", Message: "at least one die is required"})
	}
	for i, d := range r.Pool {
		if d.Faces < 2 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("dice[%d].faces", i),
				Message: fmt.Sprintf("die needs at least 2 faces, got %d", d.Faces),
			})
		}
	}
	if r.Score == nil {
		errs = append(errs, ValidationError{Field: "scoring", Message: "scoring function is required"})
	}
	if r.MaxTurns < 0 || (r.MaxTurns == 0 && !r.SetAside) {
		errs = append(errs, ValidationError{Field: "max_turns", Message: "a positive turn cap is required unless dice are set aside"})
	}
	switch r.BustPolicy {
	case BustGame, BustTurn:
	default:
		errs = append(errs, ValidationError{Field: "bust_policy", Message: fmt.Sprintf("unknown policy %q", r.BustPolicy)})
	}

	if r.Ceiling <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ceiling",
			Message: fmt.Sprintf("ceiling %d is unreachable, must be positive", r.Ceiling),
		})
		return errs
	}
	if r.MaxTurnDelta > 0 && r.Ceiling < r.MaxTurnDelta {
		errs = append(errs, ValidationError{
			Field:   "ceiling",
			Message: fmt.Sprintf("ceiling %d is below the single-turn maximum %d", r.Ceiling, r.MaxTurnDelta),
		})
	}
	if r.MaxAttainable > 0 && r.Ceiling > r.MaxAttainable {
		errs = append(errs, ValidationError{
			Field:   "ceiling",
			Message: fmt.Sprintf("ceiling %d is unreachable, at most %d can be scored", r.Ceiling, r.MaxAttainable),
		})
	}

	return errs
}

// IsValid returns true if the spec has no validation errors.
func IsValid(s *Spec) bool {
	return len(s.Validate()) == 0
}

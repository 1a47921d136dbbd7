// Package scenario loads dice and game definitions from YAML.
package scenario

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
)

// DieSpec defines one die, optionally repeated.
//
// Faces must be a YAML sequence of scalars that are all numbers or all
// strings. Weights are keyed by face label; unlisted faces keep
// dice.DefaultWeight.
type DieSpec struct {
	Faces   yaml.Node      `yaml:"faces"`
	Weights map[string]any `yaml:"weights"`
	Copies  int            `yaml:"copies"`
}

// Scenario is a named set of dice to be played together.
type Scenario struct {
	Name string `yaml:"name"`
	// Rolls is the suggested number of rolls; 0 defers to the caller.
	Rolls int       `yaml:"rolls"`
	Specs []DieSpec `yaml:"dice"`
}

// ErrDuplicateWeight indicates two weights keys resolve to the same face.
var ErrDuplicateWeight = errors.New("duplicate weight")

// Load reads and parses the scenario file at path.
//
// Postcondition: returns a validated Scenario or a non-nil error.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document.
//
// Postcondition: returns a Scenario whose Dice() succeeds, or a non-nil error.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every scenario invariant, including that the dice can be
// built and share one face set.
//
// Postcondition: returns nil, or an error describing all violations.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Rolls < 0 {
		errs = append(errs, fmt.Errorf("rolls must be >= 0, got %d", s.Rolls))
	}
	if len(s.Specs) == 0 {
		errs = append(errs, errors.New("at least one die is required"))
	}
	for i, spec := range s.Specs {
		if spec.Copies < 0 {
			errs = append(errs, fmt.Errorf("dice[%d].copies must be >= 0, got %d", i, spec.Copies))
		}
	}
	if len(errs) == 0 {
		ds, err := s.Dice()
		if err != nil {
			errs = append(errs, err)
		} else if _, err := game.New(ds, nil, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dice builds fresh dice for every spec, expanding copies. A spec with
// copies 0 yields one die.
func (s *Scenario) Dice() ([]*dice.Die, error) {
	var out []*dice.Die
	for i, spec := range s.Specs {
		n := max(spec.Copies, 1)
		for range n {
			d, err := spec.build()
			if err != nil {
				return nil, fmt.Errorf("dice[%d]: %w", i, err)
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// Game builds the scenario's dice into a Game.
func (s *Scenario) Game(roller *dice.Roller, logger *zap.Logger) (*game.Game, error) {
	ds, err := s.Dice()
	if err != nil {
		return nil, err
	}
	if logger != nil && s.Name != "" {
		logger = logger.With(zap.String("scenario", s.Name))
	}
	return game.New(ds, roller, logger)
}

func (spec DieSpec) build() (*dice.Die, error) {
	faces, err := parseFaces(&spec.Faces)
	if err != nil {
		return nil, err
	}
	d, err := dice.New(faces)
	if err != nil {
		return nil, err
	}
	// Keys are applied in sorted order so errors are reproducible.
	seen := make(map[dice.Face]string, len(spec.Weights))
	for _, label := range slices.Sorted(maps.Keys(spec.Weights)) {
		raw := spec.Weights[label]
		face, err := faceFor(d.Kind(), label)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[face]; ok {
			return nil, fmt.Errorf("weights keys %q and %q both name face %s: %w", prev, label, face, ErrDuplicateWeight)
		}
		seen[face] = label
		w, err := dice.ParseWeight(raw)
		if err != nil {
			return nil, fmt.Errorf("weight for face %q: %w", label, err)
		}
		if err := d.ChangeWeight(face, w); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseFaces(n *yaml.Node) ([]dice.Face, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("faces must be a sequence: %w", dice.ErrInvalidFaceSet)
	}
	faces := make([]dice.Face, 0, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("faces[%d] must be a scalar: %w", i, dice.ErrInvalidFaceSet)
		}
		switch item.ShortTag() {
		case "!!int", "!!float":
			var v float64
			if err := item.Decode(&v); err != nil {
				return nil, fmt.Errorf("faces[%d]: %v: %w", i, err, dice.ErrInvalidFaceSet)
			}
			faces = append(faces, dice.Num(v))
		case "!!str":
			faces = append(faces, dice.Text(item.Value))
		default:
			return nil, fmt.Errorf("faces[%d] %q must be a number or string: %w", i, item.Value, dice.ErrInvalidFaceSet)
		}
	}
	return faces, nil
}

// faceFor resolves a weights key against the die's kind.
func faceFor(kind dice.Kind, label string) (dice.Face, error) {
	if kind == dice.KindText {
		return dice.Text(label), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
	if err != nil {
		return dice.Face{}, fmt.Errorf("weights key %q is not numeric: %w", label, dice.ErrUnknownFace)
	}
	return dice.Num(v), nil
}

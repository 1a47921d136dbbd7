package dice

import (
	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// Every batch of draws is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewRoller precondition violated: src must be non-nil")
	}
	if logger == nil {
		panic("dice: NewRoller precondition violated: logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// DefaultRoller returns a Roller over crypto/rand that discards logs.
func DefaultRoller() *Roller {
	return NewRoller(NewCryptoSource(), zap.NewNop())
}

// Roll draws n faces from d and logs a per-face tally.
//
// Postcondition: same as Die.Roll.
func (r *Roller) Roll(d *Die, n int) ([]Face, error) {
	out, err := d.Roll(r.src, n)
	if err != nil {
		return nil, err
	}
	if ce := r.logger.Check(zap.DebugLevel, "dice roll"); ce != nil {
		tally := make(map[string]int, d.Len())
		for _, f := range out {
			tally[f.String()]++
		}
		ce.Write(
			zap.Int("rolls", n),
			zap.Int("faces", d.Len()),
			zap.Any("tally", tally),
		)
	}
	return out, nil
}

package dice

import (
	"math"

	"go.uber.org/zap"
)

// Percentile is the d100 used for action selection and secondary checks.
var Percentile = MustParse("1d100")

// Roller wraps a Source and logger to provide logged dice rolling.
// Every draw is logged at debug level with its purpose and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression, purpose string) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("purpose", purpose),
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// Percentile draws a uniform integer in [1, 100].
//
// Postcondition: 1 <= return value <= 100.
func (r *Roller) Percentile(purpose string) int {
	return r.Roll(Percentile, purpose).Total()
}

// Check performs an independent percentile draw and reports whether it lands
// within chance. A chance of 0 never succeeds and a chance of 1 always does;
// both still consume a draw so replays stay aligned.
//
// Precondition: 0 <= chance <= 1.
func (r *Roller) Check(chance float64, purpose string) bool {
	roll := r.Percentile(purpose)
	return roll <= int(math.Round(chance*100))
}

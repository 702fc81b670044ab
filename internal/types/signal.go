package types

// Direction is the tri-state value stored in signal columns.
type Direction int

const (
	// DirectionSell marks a bearish signal
	DirectionSell Direction = -1
	// DirectionNone marks the absence of a signal
	DirectionNone Direction = 0
	// DirectionBuy marks a bullish signal
	DirectionBuy Direction = 1
)

// Float returns the numeric form written into a signal column.
func (d Direction) Float() float64 {
	return float64(d)
}

// String returns a human-readable form used in reports.
func (d Direction) String() string {
	switch {
	case d > 0:
		return "buy"
	case d < 0:
		return "sell"
	default:
		return "none"
	}
}

// DirectionFromValue maps a stored column value back to a Direction.
// NaN maps to DirectionNone.
func DirectionFromValue(v float64) Direction {
	switch {
	case v > 0:
		return DirectionBuy
	case v < 0:
		return DirectionSell
	default:
		return DirectionNone
	}
}

package entity

// Stats - aggregate results across games. The JSON field names are the persisted record format.
type Stats struct {
	WinsX      int `json:"X"`
	WinsO      int `json:"O"`
	Draws      int `json:"Draw"`
	TotalGames int `json:"totalGames"`
}

// Record - counts a finished game. Returns false and leaves the counters alone for a non-terminal outcome.
func (that *Stats) Record(outcome Outcome) bool {
	switch {
	case outcome.State == OutcomeWin && outcome.Winner == MarkX:
		that.WinsX++
	case outcome.State == OutcomeWin && outcome.Winner == MarkO:
		that.WinsO++
	case outcome.State == OutcomeDraw:
		that.Draws++
	default:
		return false
	}

	that.TotalGames++

	return true
}

// IsValid - all counters are non-negative and the total matches the sum of results.
func (that Stats) IsValid() bool {
	if that.WinsX < 0 || that.WinsO < 0 || that.Draws < 0 {
		return false
	}

	return that.TotalGames == that.WinsX+that.WinsO+that.Draws
}

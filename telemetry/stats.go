package telemetry

import "log/slog"

// YearStats holds aggregated growth statistics for one simulated year.
type YearStats struct {
	Year int `csv:"year"`

	// Live part counts at year end
	LiveStems   int `csv:"stems"`
	LiveBuds    int `csv:"buds"`
	LiveLeaves  int `csv:"leaves"`
	LiveFlowers int `csv:"flowers"`

	// Events during the year
	StemsGrown      int `csv:"stems_grown"`
	LeavesGrown     int `csv:"leaves_grown"`
	LeavesFallen    int `csv:"leaves_fallen"`
	FlowersBloomed  int `csv:"flowers_bloomed"`
	FruitSet        int `csv:"fruit_set"`
	FruitFallen     int `csv:"fruit_fallen"`
	ShootsInhibited int `csv:"shoots_inhibited"`
	FlowersMissed   int `csv:"flowers_missed"`
}

// Log emits the stats through slog.
func (s YearStats) Log() {
	slog.Info("year complete",
		"year", s.Year,
		"stems", s.LiveStems,
		"buds", s.LiveBuds,
		"leaves", s.LiveLeaves,
		"flowers", s.LiveFlowers,
		"stems_grown", s.StemsGrown,
		"leaves_fallen", s.LeavesFallen,
		"fruit_set", s.FruitSet,
		"shoots_inhibited", s.ShootsInhibited,
	)
}

// Package telemetry provides growth statistics tracking and CSV output for
// simulation runs.
package telemetry

// Collector accumulates growth events within year windows and produces
// YearStats.
type Collector struct {
	// Event counters for current window
	stemsGrown      int
	leavesGrown     int
	leavesFallen    int
	flowersBloomed  int
	fruitSet        int
	fruitFallen     int
	shootsInhibited int
	flowersMissed   int
}

// NewCollector creates a new growth stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordStemGrown records a new stem segment.
func (c *Collector) RecordStemGrown() {
	c.stemsGrown++
}

// RecordLeafGrown records a new leaf.
func (c *Collector) RecordLeafGrown() {
	c.leavesGrown++
}

// RecordLeafFallen records a leaf leaving the live set.
func (c *Collector) RecordLeafFallen() {
	c.leavesFallen++
}

// RecordFlowerBloomed records a bud retiring into a flower.
func (c *Collector) RecordFlowerBloomed() {
	c.flowersBloomed++
}

// RecordFruitSet records a flower becoming fruit.
func (c *Collector) RecordFruitSet() {
	c.fruitSet++
}

// RecordFruitFallen records a ripe fruit dropping.
func (c *Collector) RecordFruitFallen() {
	c.fruitFallen++
}

// RecordShootInhibited records a shoot attempt suppressed by apical dominance.
func (c *Collector) RecordShootInhibited() {
	c.shootsInhibited++
}

// RecordFlowerMissed records a flower attempt lost to the probability gate.
func (c *Collector) RecordFlowerMissed() {
	c.flowersMissed++
}

// Counts holds live part counts at a window boundary.
type Counts struct {
	Stems   int
	Buds    int
	Leaves  int
	Flowers int
}

// Flush produces a YearStats for the completed year and resets counters for
// the next window.
func (c *Collector) Flush(year int, live Counts) YearStats {
	stats := YearStats{
		Year: year,

		LiveStems:   live.Stems,
		LiveBuds:    live.Buds,
		LiveLeaves:  live.Leaves,
		LiveFlowers: live.Flowers,

		StemsGrown:      c.stemsGrown,
		LeavesGrown:     c.leavesGrown,
		LeavesFallen:    c.leavesFallen,
		FlowersBloomed:  c.flowersBloomed,
		FruitSet:        c.fruitSet,
		FruitFallen:     c.fruitFallen,
		ShootsInhibited: c.shootsInhibited,
		FlowersMissed:   c.flowersMissed,
	}

	c.stemsGrown = 0
	c.leavesGrown = 0
	c.leavesFallen = 0
	c.flowersBloomed = 0
	c.fruitSet = 0
	c.fruitFallen = 0
	c.shootsInhibited = 0
	c.flowersMissed = 0

	return stats
}

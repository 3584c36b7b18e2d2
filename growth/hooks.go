package growth

// Nil-safe telemetry hooks. The collector is optional; a tree without one
// records nothing.

func (t *Tree) recordStemGrown() {
	if t.collector != nil {
		t.collector.RecordStemGrown()
	}
}

func (t *Tree) recordLeafGrown() {
	if t.collector != nil {
		t.collector.RecordLeafGrown()
	}
}

func (t *Tree) recordLeafFallen() {
	if t.collector != nil {
		t.collector.RecordLeafFallen()
	}
}

func (t *Tree) recordFlowerBloomed() {
	if t.collector != nil {
		t.collector.RecordFlowerBloomed()
	}
}

func (t *Tree) recordFruitSet() {
	if t.collector != nil {
		t.collector.RecordFruitSet()
	}
}

func (t *Tree) recordFruitFallen() {
	if t.collector != nil {
		t.collector.RecordFruitFallen()
	}
}

func (t *Tree) recordShootInhibited() {
	if t.collector != nil {
		t.collector.RecordShootInhibited()
	}
}

func (t *Tree) recordFlowerMissed() {
	if t.collector != nil {
		t.collector.RecordFlowerMissed()
	}
}

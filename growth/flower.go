package growth

import "github.com/nifets/ArborGen/scene"

// Flower is a bloom and the fruit it becomes. It owns two scene parts: the
// flower mesh drops when the fruit sets, and the fruit mesh drops when it
// ripens. Potential accumulates with the fruit-growth signal; crossing 1
// sets the fruit, crossing 2 drops it. Both transitions are one-shot.
type Flower struct {
	FlowerID scene.PartID
	FruitID  scene.PartID

	Potential float64
	IsFruit   bool
	Size      float64
}

func newFlower(flowerID, fruitID scene.PartID, size float64) *Flower {
	return &Flower{FlowerID: flowerID, FruitID: fruitID, Size: size}
}

// Update accumulates fruiting potential. fruitSet reports the flower turned
// into fruit this step; fell reports the ripe fruit dropped this step.
// IsFruit is monotonic: crossing 1 again has no further effect.
func (f *Flower) Update(amount float64) (fruitSet, fell bool) {
	f.Potential += amount
	if !f.IsFruit && f.Potential > 1 {
		f.IsFruit = true
		fruitSet = true
	}
	if f.Potential > 2 {
		fell = true
	}
	return fruitSet, fell
}

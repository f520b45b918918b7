package generator

import (
	"math/rand"

	"github.com/kyukyubank/banking-service/internal/core/domain"
)

// pickerOrder fixes the cumulative-weight iteration order so that a seeded
// run reproduces the same category sequence regardless of map ordering.
var pickerOrder = []domain.TransferCategory{
	domain.Internal,
	domain.External,
	domain.DepositTx,
	domain.Withdrawal,
}

// categoryPicker draws transfer categories from a configured distribution.
// Probability mass left unassigned by the distribution falls through to the
// default category.
type categoryPicker struct {
	categories []domain.TransferCategory
	cumulative []float64
}

func newCategoryPicker(dist map[domain.TransferCategory]float64) *categoryPicker {
	p := &categoryPicker{}
	sum := 0.0
	for _, cat := range pickerOrder {
		w, ok := dist[cat]
		if !ok || w <= 0 {
			continue
		}
		sum += w
		p.categories = append(p.categories, cat)
		p.cumulative = append(p.cumulative, sum)
	}
	return p
}

func (p *categoryPicker) pick(rnd *rand.Rand) domain.TransferCategory {
	u := rnd.Float64()
	for i, c := range p.cumulative {
		if u < c {
			return p.categories[i]
		}
	}
	return defaultCategory
}

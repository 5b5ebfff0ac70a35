package lease

import (
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// RECOVERY INDEMNITY - Flat amount per late installment
// =============================================================================

// DefaultIndemnityAmount is the statutory flat recovery indemnity.
var DefaultIndemnityAmount = generic.MustAmount("40.00")

type IndemnityRule struct {
	Amount generic.Amount
}

// IndemnitiesFor raises one indemnity per rent obligation due strictly
// before asOf, dated the day after the rent's due date.
func (r IndemnityRule) IndemnitiesFor(obligations []generic.Obligation, asOf generic.Date) []generic.Obligation {
	var out []generic.Obligation
	for _, o := range obligations {
		if o.Kind != generic.KindRent || !o.DueDate.Before(asOf) {
			continue
		}
		out = append(out, generic.Obligation{
			ID:       "indemnity-" + o.ID,
			DueDate:  o.DueDate.AddDays(1),
			Label:    "Indemnité forfaitaire de recouvrement, " + o.Label,
			Amount:   r.Amount,
			Kind:     generic.KindIndemnity,
			SourceID: o.ID,
		})
	}
	return out
}

// ExcludeSettledOnTime drops the indemnities whose rent was fully paid on or
// before its due date in a prior allocation run.
func ExcludeSettledOnTime(indemnities []generic.Obligation, res generic.Result) []generic.Obligation {
	out := make([]generic.Obligation, 0, len(indemnities))
	for _, ind := range indemnities {
		line, ok := res.Line(ind.SourceID)
		if ok && line.Status == generic.StatusSettled && line.SettledOn != nil && !line.SettledOn.After(line.DueDate) {
			continue
		}
		out = append(out, ind)
	}
	return out
}

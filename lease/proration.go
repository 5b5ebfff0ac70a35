package lease

import (
	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// commercialMonthDays is the 30-day month convention used for partial months.
const commercialMonthDays = 30

// Prorate30 bills one calendar month. A fully covered month bills the
// monthly amount whatever its length; a partial month bills
// monthly × min(days, 30) / 30.
func Prorate30(monthly generic.Amount, covered generic.Period) generic.Amount {
	if covered.IsFullMonth() {
		return monthly
	}
	days := covered.Days()
	if days > commercialMonthDays {
		days = commercialMonthDays
	}
	return monthly.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(commercialMonthDays))
}

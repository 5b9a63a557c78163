package wareneingaenge

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// A note like "Eingabe: 2,5 Paletten" overrides the submitted quantity
// with the pallet count times the units-per-pallet factor. The comma
// is the German decimal separator. Existing clients submit quantities
// through this free-text marker, so the parser must keep accepting it.
var palletPattern = regexp.MustCompile(`Eingabe:\s*(\d+(?:,\d+)?)\s*Paletten`)

const unitsPerPallet = 80

// palletQuantity returns the effective booking quantity. When the notes
// carry a pallet marker it is the parsed pallet count times
// unitsPerPallet, otherwise the submitted quantity unchanged.
func palletQuantity(notes *string, submitted decimal.Decimal) decimal.Decimal {
	if notes == nil || !strings.Contains(*notes, "Paletten") {
		return submitted
	}

	match := palletPattern.FindStringSubmatch(*notes)
	if match == nil {
		return submitted
	}

	count, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", "."))
	if err != nil {
		return submitted
	}

	return count.Mul(decimal.NewFromInt(unitsPerPallet))
}

package services

import (
	"math"

	"lodging-backend/models"
)

// MinOverridePrice is the floor for custom price values. Anything below it
// is treated as a mistyped amount and rejected before save.
const MinOverridePrice = 1000

// SelectedUnit is one room unit chosen for a stay together with its room
// type's normal nightly rate.
type SelectedUnit struct {
	RoomTypeID  uint   `json:"roomTypeId"`
	RoomNumber  string `json:"roomNumber"`
	NightlyRate int64  `json:"nightlyRate"`
}

// CustomPriceOverride is the editor-only custom pricing state. Both values
// are kept so switching modes does not lose the other entry; only the
// active mode's value participates in the computation.
type CustomPriceOverride struct {
	Enabled       bool   `json:"enabled"`
	Mode          string `json:"mode"`
	PerNightValue int64  `json:"perNightValue,omitempty"`
	TotalValue    int64  `json:"totalValue,omitempty"`
}

// ActiveValue returns the value of the currently selected mode.
func (o CustomPriceOverride) ActiveValue() int64 {
	if o.Mode == models.OverrideTotal {
		return o.TotalValue
	}
	return o.PerNightValue
}

// Validate rejects zero, negative, or sub-minimum override values. Only
// meaningful when the override is enabled.
func (o CustomPriceOverride) Validate() error {
	if !o.Enabled {
		return nil
	}
	field := "customPricePerNight"
	if o.Mode == models.OverrideTotal {
		field = "customPriceTotal"
	} else if o.Mode != models.OverridePerNight {
		return ValidationError{Field: "customPriceMode", Message: "unknown custom price mode"}
	}
	if o.ActiveValue() < MinOverridePrice {
		return ValidationError{Field: field, Message: "custom price is below the minimum allowed value"}
	}
	return nil
}

// AddOnSelection is one add-on chosen for the stay.
type AddOnSelection struct {
	AddOn    models.AddOn `json:"addOn"`
	Quantity int          `json:"quantity"`
}

// PriceInput carries everything the calculator needs. All currency values
// are integers in the smallest local denomination.
type PriceInput struct {
	Units      []SelectedUnit       `json:"units"`
	Nights     int                  `json:"nights"`
	GuestCount int                  `json:"guestCount"`
	Override   *CustomPriceOverride `json:"override,omitempty"`
	AddOns     []AddOnSelection     `json:"addOns,omitempty"`
}

// PriceQuote is the computed result. PerNightEquivalent covers the room
// charge only; the add-on contribution sits on top and is never folded
// into an override.
type PriceQuote struct {
	RoomTotal          int64 `json:"roomTotal"`
	AddOnTotal         int64 `json:"addOnTotal"`
	TotalPrice         int64 `json:"totalPrice"`
	PerNightEquivalent int64 `json:"perNightEquivalent"`
}

// ComputeTotal derives the monetary total for a multi-room, possibly
// custom-priced, multi-night stay.
//
// Baseline: sum of the selected units' nightly rates, times nights. A
// per_night override is a per-unit nightly rate (override x nights x unit
// count), a total override is taken verbatim.
func ComputeTotal(in PriceInput) (PriceQuote, error) {
	if in.Nights <= 0 {
		return PriceQuote{}, ValidationError{Field: "nights", Message: "stay must be at least one night"}
	}

	var quote PriceQuote
	nights := int64(in.Nights)
	unitCount := int64(len(in.Units))

	switch {
	case in.Override != nil && in.Override.Enabled:
		if err := in.Override.Validate(); err != nil {
			return PriceQuote{}, err
		}
		if in.Override.Mode == models.OverrideTotal {
			quote.RoomTotal = in.Override.TotalValue
			quote.PerNightEquivalent = in.Override.TotalValue / nights
		} else {
			quote.RoomTotal = in.Override.PerNightValue * nights * unitCount
			quote.PerNightEquivalent = in.Override.PerNightValue * unitCount
		}
	default:
		var perNight int64
		for _, u := range in.Units {
			perNight += u.NightlyRate
		}
		quote.RoomTotal = perNight * nights
		quote.PerNightEquivalent = perNight
	}

	addOnTotal, err := AddOnContribution(in.AddOns, in.Nights, in.GuestCount)
	if err != nil {
		return PriceQuote{}, err
	}
	quote.AddOnTotal = addOnTotal
	quote.TotalPrice = quote.RoomTotal + quote.AddOnTotal
	return quote, nil
}

// AddOnContribution totals the selected add-ons for a stay of the given
// length and party size.
func AddOnContribution(selections []AddOnSelection, nights, guestCount int) (int64, error) {
	var total int64
	for _, sel := range selections {
		line, err := AddOnLineTotal(sel, nights, guestCount)
		if err != nil {
			return 0, err
		}
		total += line
	}
	return total, nil
}

// AddOnLineTotal prices a single add-on selection according to its mode.
func AddOnLineTotal(sel AddOnSelection, nights, guestCount int) (int64, error) {
	if sel.Quantity <= 0 {
		return 0, ValidationError{Field: "addOns", Message: "add-on quantity must be at least 1"}
	}
	if sel.AddOn.MaxQuantity > 0 && sel.Quantity > sel.AddOn.MaxQuantity {
		return 0, ValidationError{Field: "addOns", Message: "add-on quantity exceeds the allowed maximum"}
	}

	base := sel.AddOn.Price * int64(sel.Quantity)
	switch sel.AddOn.PricingMode {
	case models.AddOnPerNight:
		return base * int64(nights), nil
	case models.AddOnPerPersonPerNight:
		return base * int64(nights) * int64(guestCount), nil
	case models.AddOnPerPerson:
		return base * int64(guestCount), nil
	case models.AddOnOnce:
		return base, nil
	default:
		return 0, ValidationError{Field: "addOns", Message: "unknown add-on pricing mode"}
	}
}

// ApplyQuickDiscount sets a per_night override discounted by percent off
// the baseline per-unit rate and enables it. A convenience mutator over
// the same override state, not a separate pricing path.
func ApplyQuickDiscount(o CustomPriceOverride, baselinePerUnitRate int64, percent int) CustomPriceOverride {
	discounted := roundHalfUp(float64(baselinePerUnitRate) * (1 - float64(percent)/100))
	o.Enabled = true
	o.Mode = models.OverridePerNight
	o.PerNightValue = discounted
	return o
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

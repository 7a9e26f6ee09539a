package domain

// Spend category kinds
const (
	CategoryCash    = "cash"
	CategoryFuel    = "fuel"
	CategoryPharma  = "pharma"
	CategoryGrocery = "grocery"
	CategoryMobile  = "mobile"
	CategoryDTH     = "dth"
	CategoryBills   = "bills"
)

// Credit lines
const (
	LineSpend = "spend"
	LineCash  = "cash"
)

// SpendCategory is immutable reference data for a spend vertical.
// AppOnly categories are redeemed entirely in-app (cash transfer,
// recharges); the rest go through a merchant scan.
type SpendCategory struct {
	ID          int    `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	AppOnly     bool   `json:"app_only"`
}

// Categories returns the spend category registry.
func Categories() []SpendCategory {
	return []SpendCategory{
		{ID: 1, Kind: CategoryCash, DisplayName: "EC Cash (Bank Transfer)", AppOnly: true},
		{ID: 2, Kind: CategoryFuel, DisplayName: "Fuel", AppOnly: false},
		{ID: 3, Kind: CategoryPharma, DisplayName: "Pharma", AppOnly: false},
		{ID: 4, Kind: CategoryGrocery, DisplayName: "Grocery", AppOnly: false},
		{ID: 5, Kind: CategoryMobile, DisplayName: "Mobile Recharge", AppOnly: true},
		{ID: 6, Kind: CategoryDTH, DisplayName: "DTH/OTT", AppOnly: true},
		{ID: 7, Kind: CategoryBills, DisplayName: "Bill Payments", AppOnly: true},
	}
}

// CategoryByKind looks up a category by its kind identifier.
func CategoryByKind(kind string) (SpendCategory, bool) {
	for _, c := range Categories() {
		if c.Kind == kind {
			return c, true
		}
	}
	return SpendCategory{}, false
}

// LineForCategory maps a category to the credit line it draws from.
// Cash transfers use the separate cash line; everything else shares
// the spend line.
func LineForCategory(kind string) string {
	if kind == CategoryCash {
		return LineCash
	}
	return LineSpend
}

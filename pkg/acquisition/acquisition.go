// Package acquisition computes the once-off costs of buying and selling a
// property: transfer duty, conveyancing, agent commission and the tax due at
// disposal.
package acquisition

import (
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// bracket is one band of the progressive transfer-duty schedule. Duty on a
// price inside the band is Base + (price - Floor) * Rate.
type bracket struct {
	Floor float64
	Base  float64
	Rate  float64
}

// transferDutyBrackets is the 2024/2025 schedule, highest band first. Prices
// at or below the lowest floor pay no duty.
var transferDutyBrackets = []bracket{
	{Floor: 2994000, Base: 106716, Rate: 0.11},
	{Floor: 2329500, Base: 53556, Rate: 0.08},
	{Floor: 1663800, Base: 13614, Rate: 0.06},
	{Floor: 1210000, Base: 0, Rate: 0.03},
}

// Breakdown holds the costs of acquiring a property on top of its price.
type Breakdown struct {
	TransferDuty float64 `json:"transferDuty"`
	Conveyancing float64 `json:"conveyancing"`
	Total        float64 `json:"total"`
}

// SaleBreakdown holds the costs incurred when disposing of a property.
type SaleBreakdown struct {
	SalePrice       float64 `json:"salePrice"`
	Gain            float64 `json:"gain"`
	AgentCommission float64 `json:"agentCommission"`
	CGT             float64 `json:"cgt"`
	Withholding     float64 `json:"withholding"`
	TaxAtSale       float64 `json:"taxAtSale"`
	Total           float64 `json:"total"`
}

// TransferDuty returns the progressive duty payable on a purchase price.
func TransferDuty(price float64) float64 {
	for _, b := range transferDutyBrackets {
		if price > b.Floor {
			return b.Base + (price-b.Floor)*b.Rate
		}
	}
	return 0
}

// AcquisitionCost is transfer duty plus the fixed conveyancing fee.
func AcquisitionCost(price float64) float64 {
	return TransferDuty(price) + constants.ConveyancingFee
}

// Acquire returns the itemised acquisition costs for a purchase price.
func Acquire(price float64) Breakdown {
	duty := TransferDuty(price)
	return Breakdown{
		TransferDuty: duty,
		Conveyancing: constants.ConveyancingFee,
		Total:        duty + constants.ConveyancingFee,
	}
}

// Sale itemises the cost of selling at salePrice a property bought at
// purchasePrice. Withholding is a prepayment of the seller's tax, so the tax
// actually borne at sale is the larger of CGT and withholding.
func Sale(salePrice, purchasePrice float64) SaleBreakdown {
	gain := salePrice - purchasePrice
	commission := salePrice * constants.AgentCommissionRate
	cgt := mathutil.PositivePart(gain) * constants.CapitalGainsRate
	withholding := salePrice * constants.WithholdingRate
	taxAtSale := math.Max(cgt, withholding)

	return SaleBreakdown{
		SalePrice:       salePrice,
		Gain:            gain,
		AgentCommission: commission,
		CGT:             cgt,
		Withholding:     withholding,
		TaxAtSale:       taxAtSale,
		Total:           commission + taxAtSale,
	}
}

// SaleCost is the total of agent commission and tax at sale.
func SaleCost(salePrice, purchasePrice float64) float64 {
	return Sale(salePrice, purchasePrice).Total
}

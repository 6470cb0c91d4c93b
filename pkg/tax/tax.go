// Package tax estimates the recurring and point-of-sale tax liabilities of
// holding a property.
package tax

import (
	"github.com/iwvelando/property-forecast/pkg/acquisition"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"github.com/iwvelando/property-forecast/pkg/operating"
)

// Recurring holds annual taxes while the property is held.
type Recurring struct {
	MunicipalRates    float64 `json:"municipalRates"`
	MunicipalRatesPct float64 `json:"municipalRatesPct"`
	LongTermIncomeTax float64 `json:"longTermIncomeTax"`
	AirbnbIncomeTax   float64 `json:"airbnbIncomeTax"`
	IncomeTaxRatePct  float64 `json:"incomeTaxRatePct"`
}

// AtSale holds the liabilities of selling after a holding period.
type AtSale struct {
	Years           int     `json:"years"`
	Appreciation    float64 `json:"appreciation"`
	PurchasePrice   float64 `json:"purchasePrice"`
	FutureValue     float64 `json:"futureValue"`
	Gain            float64 `json:"gain"`
	AgentCommission float64 `json:"agentCommission"`
	CGT             float64 `json:"cgt"`
	Withholding     float64 `json:"withholding"`
	TaxAtSale       float64 `json:"taxAtSale"`
	TotalSaleCost   float64 `json:"totalSaleCost"`
	NetProceeds     float64 `json:"netProceeds"`
}

// EstimateRecurring returns the municipal rates shown to the owner and the
// income tax due under each strategy given their pre-tax net income.
func EstimateRecurring(price, longTermNetPreTax, airbnbNetPreTax float64) Recurring {
	return Recurring{
		MunicipalRates:    price * constants.MunicipalRatesRate,
		MunicipalRatesPct: constants.MunicipalRatesRate * constants.PercentageMultiplier,
		LongTermIncomeTax: operating.IncomeTax(longTermNetPreTax),
		AirbnbIncomeTax:   operating.IncomeTax(airbnbNetPreTax),
		IncomeTaxRatePct:  constants.IncomeTaxRate * constants.PercentageMultiplier,
	}
}

// EstimateAtSale values the property after years of appreciation and
// itemises what a sale at that value would cost. Net proceeds are before
// settling any outstanding bond.
func EstimateAtSale(price, appreciation float64, years int) AtSale {
	futureValue := mathutil.Compound(price, appreciation, years)
	sale := acquisition.Sale(futureValue, price)

	return AtSale{
		Years:           years,
		Appreciation:    appreciation,
		PurchasePrice:   price,
		FutureValue:     futureValue,
		Gain:            sale.Gain,
		AgentCommission: sale.AgentCommission,
		CGT:             sale.CGT,
		Withholding:     sale.Withholding,
		TaxAtSale:       sale.TaxAtSale,
		TotalSaleCost:   sale.Total,
		NetProceeds:     futureValue - sale.Total,
	}
}

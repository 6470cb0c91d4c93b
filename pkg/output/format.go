// Package output provides utilities for formatting and displaying evaluation results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/recommend"
	"github.com/iwvelando/property-forecast/pkg/format"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"github.com/iwvelando/property-forecast/pkg/operating"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result forecast.Result) {
	WritePretty(os.Stdout, result)
}

// CsvFormat outputs the projections in comma-separated value format.
func CsvFormat(result forecast.Result) {
	WriteCSV(os.Stdout, result)
}

// JSONFormat outputs the full result for an external renderer.
func JSONFormat(result forecast.Result) error {
	return WriteJSON(os.Stdout, result)
}

// WritePretty writes the report to w.
func WritePretty(w io.Writer, result forecast.Result) {
	p := message.NewPrinter(language.English)
	req := result.Request

	fmt.Fprintf(w, "--- Property ---\n")
	fmt.Fprintf(w, "Price %s | %.0f m² | %s\n",
		format.Currency(req.Property.PurchasePrice), req.Property.SizeSqm, req.Property.PurchaseType)
	fmt.Fprintf(w, "Transfer duty %s | Conveyancing %s | Acquisition %s\n",
		format.Currency(result.Acquisition.TransferDuty), format.Currency(result.Acquisition.Conveyancing),
		format.Currency(result.Acquisition.Total))
	if result.Mortgage.LoanAmount > 0 {
		fmt.Fprintf(w, "Bond %s at %s over %d years | %s per month\n",
			format.Currency(result.Mortgage.LoanAmount), format.Percent(result.Mortgage.AnnualInterestRate*100),
			result.Mortgage.TermYears, format.Currency(result.Mortgage.MonthlyPayment))
	}
	fmt.Fprintf(w, "Equity required %s\n\n", format.Currency(result.Mortgage.EquityRequired))

	fmt.Fprintf(w, "--- Operating (current year) ---\n")
	writeOperating(w, "Long-term", result.LongTerm)
	writeOperating(w, "Airbnb", result.Airbnb)
	fmt.Fprintf(w, "\n")

	for _, projection := range result.Projections {
		fmt.Fprintf(w, "--- Projection for %s ---\n", projection.Strategy.Label())
		fmt.Fprintf(w, "Year | Cash flow     | Value         | Loan          | Equity        | ROE     | Profit if sold\n")
		fmt.Fprintf(w, "____ | _____________ | _____________ | _____________ | _____________ | _______ | ______________\n")
		for _, y := range projection.Years {
			_, _ = p.Fprintf(w, "%4d | R%.2f | R%.2f | R%.2f | R%.2f | %.2f%% | R%.2f\n",
				y.Year, cell(y.CashFlowCumulative), cell(y.PropertyValue), cell(y.RemainingLoanBalance),
				cell(y.Equity), cell(y.ROEPercent), cell(y.TotalROIIfSoldNow))
		}
		fmt.Fprintf(w, "Break-even year %s | Sell signal year %s | Year 10 profit %s\n\n",
			format.Year(projection.Summary.BreakEvenYear), format.Year(projection.Summary.SellSignalYear),
			format.Currency(projection.Summary.Year10Profit))
	}

	atSale := result.Taxes.AtSale
	fmt.Fprintf(w, "--- Sale after %d years ---\n", atSale.Years)
	fmt.Fprintf(w, "Value %s | Commission %s | CGT %s | Withholding %s | Net proceeds %s\n\n",
		format.Currency(atSale.FutureValue), format.Currency(atSale.AgentCommission),
		format.Currency(atSale.CGT), format.Currency(atSale.Withholding), format.Currency(atSale.NetProceeds))

	fmt.Fprintf(w, "--- Recommendation ---\n")
	fmt.Fprintf(w, "%s (Airbnb - long-term yield: %+.2f points)\n",
		result.Recommendation.Category, result.Recommendation.YieldDelta)
	for _, note := range result.Recommendation.Notes {
		fmt.Fprintf(w, "  * %s\n", noteText(note))
	}
}

func writeOperating(w io.Writer, label string, b operating.Breakdown) {
	fmt.Fprintf(w, "%-9s | revenue %s | expenses %s | tax %s | net %s | yield %s\n",
		label, format.Currency(b.Revenue.EffectiveRevenue), format.Currency(b.TotalExpenses),
		format.Currency(b.IncomeTax), format.Currency(b.NetAfterTax), format.Percent(b.NetYieldPercent))
}

func noteText(note recommend.Note) string {
	if note.From != 0 {
		return fmt.Sprintf("%s (%s-%s)", note.Code, note.From, note.To)
	}
	return string(note.Code)
}

// cell rounds a rand amount to cents for display. Adding zero turns a
// rounded negative zero into positive zero so it never prints as -0.00.
func cell(v float64) float64 {
	return mathutil.Round(v) + 0
}

// WriteCSV writes one row per year with both strategies side by side.
func WriteCSV(w io.Writer, result forecast.Result) {
	fmt.Fprintf(w, `"year"`)
	for _, projection := range result.Projections {
		s := projection.Strategy
		fmt.Fprintf(w, `,"cash flow (%s)","value (%s)","loan (%s)","equity (%s)","roe (%s)","profit if sold (%s)"`,
			s, s, s, s, s, s)
	}
	fmt.Fprintf(w, "\n")

	if len(result.Projections) == 0 {
		return
	}
	for i := range result.Projections[0].Years {
		fmt.Fprintf(w, `"%d"`, result.Projections[0].Years[i].Year)
		for _, projection := range result.Projections {
			y := projection.Years[i]
			fmt.Fprintf(w, `,"%.2f","%.2f","%.2f","%.2f","%.4f","%.2f"`,
				cell(y.CashFlowCumulative), cell(y.PropertyValue), cell(y.RemainingLoanBalance),
				cell(y.Equity), y.ROEPercent, cell(y.TotalROIIfSoldNow))
		}
		fmt.Fprintf(w, "\n")
	}
}

// CsvString returns the CSV rendering as a string.
func CsvString(result forecast.Result) string {
	var b strings.Builder
	WriteCSV(&b, result)
	return b.String()
}

// WriteJSON writes the indented JSON encoding of result.
func WriteJSON(w io.Writer, result forecast.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

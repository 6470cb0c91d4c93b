// Package constants provides shared constants for the property-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the number of nights a short-term rental can be booked in a year
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Operating assumptions. These are fixed market constants, not user input.
const (
	// LongTermOccupancy is the fraction of the year a long-term lease is let
	LongTermOccupancy = 0.95

	// LevyPerSqmMonthly is the body-corporate levy in rand per m² per month
	LevyPerSqmMonthly = 45.0

	// MunicipalRatesRate is the annual municipal rates as a fraction of price
	MunicipalRatesRate = 0.005

	// InsuranceRate is the annual building insurance as a fraction of price
	InsuranceRate = 0.002

	// LongTermMaintenanceRate is maintenance as a fraction of effective revenue
	LongTermMaintenanceRate = 0.05

	// AirbnbPlatformFeeRate is the booking platform commission on gross revenue
	AirbnbPlatformFeeRate = 0.15

	// AirbnbMaintenanceRate is maintenance as a fraction of gross revenue
	AirbnbMaintenanceRate = 0.07

	// AirbnbManagementFeeRate applies to gross revenue after the platform fee
	AirbnbManagementFeeRate = 0.20

	// CleaningCostPerTurnover is the rand cost of one guest checkout clean
	CleaningCostPerTurnover = 400.0

	// AverageStayNights is used to derive turnovers from booked nights
	AverageStayNights = 3.0

	// UtilitiesPerSqmMonthly is Airbnb-only utilities in rand per m² per month
	UtilitiesPerSqmMonthly = 80.0

	// AirbnbReserveRate is the annual furniture and fixture replacement reserve
	AirbnbReserveRate = 0.03
)

// Tax assumptions (2024/2025 South African schedule).
const (
	// IncomeTaxRate is the flat rate applied to positive net income
	IncomeTaxRate = 0.25

	// ConveyancingFee is the fixed legal fee for transferring title
	ConveyancingFee = 45000.0

	// CapitalGainsRate is the effective CGT rate on a positive gain
	CapitalGainsRate = 0.18

	// WithholdingRate is the non-resident seller withholding on the sale price
	WithholdingRate = 0.075

	// AgentCommissionRate is the estate agent commission on the sale price
	AgentCommissionRate = 0.0805
)

// Projection constants
const (
	// ProjectionYears is the ownership horizon of the projection
	ProjectionYears = 10

	// MortgageTermYears is the fixed bond term
	MortgageTermYears = 20

	// SellSignalROEPercent is the return on equity below which selling is flagged
	SellSignalROEPercent = 7.0
)

// Documented fallbacks applied instead of failing on unset input.
const (
	// DefaultInterestRate replaces an unset, zero or NaN interest rate
	DefaultInterestRate = 0.11

	// DefaultSizeSqm replaces an unset or NaN property size
	DefaultSizeSqm = 35.0

	// DefaultAppreciation replaces an unset annual appreciation rate
	DefaultAppreciation = 0.05

	// DefaultRentIncrease replaces an unset annual rent escalation
	DefaultRentIncrease = 0.06
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable output format for external renderers
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultCacheTTLSeconds is how long cached evaluations are kept
	DefaultCacheTTLSeconds = 3600

	// DefaultCacheMaxEntries bounds the in-process cache
	DefaultCacheMaxEntries = 10000
)

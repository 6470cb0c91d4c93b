package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/neighborhood"
	"github.com/iwvelando/property-forecast/pkg/output"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	// Logs go to stderr unless a file is configured so that stdout carries
	// only the report.
	cfg.OutputPaths = []string{"stderr"}
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

// inputs collects the evaluation flags. Only flags the user actually set
// override the configuration or the neighborhood table.
type inputs struct {
	neighborhood string
	listing      string
	purchaseType string
	size         float64
	price        float64
	rent         float64
	nightly      float64
	occupancy    float64
	zone         string
	ltv          float64
	rate         float64
	appreciation float64
	rentIncrease float64
	set          map[string]bool
}

func (in inputs) isSet(name string) bool {
	return in.set[name]
}

// loadConfiguration reads path, falling back to defaults when the default
// file is absent.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(path); err != nil && errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.LoadConfigurationFromReader(strings.NewReader(""))
	}
	return config.LoadConfiguration(path)
}

// loadTable loads the neighborhood table and listings named in the configuration.
func loadTable(data config.DataConfig) (*neighborhood.Table, error) {
	if data.Neighborhoods == "" {
		return nil, nil
	}
	table, err := neighborhood.Load(data.Neighborhoods)
	if err != nil {
		return nil, err
	}
	if data.Listings != "" {
		if err := table.LoadListings(data.Listings); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// buildRequest assembles an evaluation request from configuration, the
// neighborhood table and flags, in increasing order of precedence.
func buildRequest(conf *config.Configuration, table *neighborhood.Table, in inputs) (forecast.Request, error) {
	req := forecast.Request{
		Financing:   conf.Financing,
		Assumptions: conf.Assumptions,
	}

	if in.neighborhood != "" {
		if table == nil {
			return req, fmt.Errorf("neighborhood %q requested but no neighborhood data is configured", in.neighborhood)
		}
		n, err := table.Lookup(in.neighborhood)
		if err != nil {
			return req, err
		}
		var listing *neighborhood.Listing
		if in.listing != "" {
			l, err := table.ListingFor(n, in.listing)
			if err != nil {
				return req, err
			}
			listing = &l
		}
		req.Property = n.ResolveProperty(property.PurchaseType(in.purchaseType), in.size, listing)
		req.Profile = n.Profile()
	} else {
		if in.listing != "" {
			return req, fmt.Errorf("listing %q requires a neighborhood", in.listing)
		}
		req.Property = property.Input{
			SizeSqm:      in.size,
			PurchaseType: property.PurchaseType(in.purchaseType),
		}
	}

	if in.isSet("price") {
		req.Property.PurchasePrice = in.price
	}
	if in.isSet("rent") {
		req.Profile.LongTermRentPerSqm = in.rent
	}
	if in.isSet("nightly") {
		req.Profile.AirbnbNightlyRate = in.nightly
	}
	if in.isSet("occupancy") {
		req.Profile.AirbnbOccupancyPct = in.occupancy
	}
	if in.isSet("zone") {
		req.Profile.Zone = in.zone
	}
	if in.isSet("ltv") {
		req.Financing.LoanToValue = in.ltv
	}
	if in.isSet("rate") {
		req.Financing.AnnualInterestRate = in.rate
	}
	if in.isSet("appreciation") {
		req.Assumptions.Appreciation = property.Rate(in.appreciation)
	}
	if in.isSet("rent-increase") {
		req.Assumptions.RentIncrease = property.Rate(in.rentIncrease)
	}
	return req, nil
}

func main() {
	var in inputs
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	dataFile := flag.String("data", "", "neighborhood price table override")
	listingsFile := flag.String("listings", "", "listings file override")
	flag.StringVar(&in.neighborhood, "neighborhood", "", "neighborhood id to evaluate")
	flag.StringVar(&in.listing, "listing", "", "listing id overriding the neighborhood medians")
	flag.StringVar(&in.purchaseType, "type", "", "purchase type: resale or new")
	flag.Float64Var(&in.size, "size", 0, "size in m²")
	flag.Float64Var(&in.price, "price", 0, "purchase price")
	flag.Float64Var(&in.rent, "rent", 0, "long-term rent per m² per month")
	flag.Float64Var(&in.nightly, "nightly", 0, "Airbnb nightly rate")
	flag.Float64Var(&in.occupancy, "occupancy", 0, "Airbnb occupancy in percent")
	flag.StringVar(&in.zone, "zone", "", "zone used for recommendation notes")
	flag.Float64Var(&in.ltv, "ltv", 0, "loan-to-value ratio between 0 and 1")
	flag.Float64Var(&in.rate, "rate", 0, "annual interest rate, e.g. 0.11")
	flag.Float64Var(&in.appreciation, "appreciation", 0, "annual appreciation rate")
	flag.Float64Var(&in.rentIncrease, "rent-increase", 0, "annual rent escalation rate")
	flag.Parse()

	in.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		in.set[f.Name] = true
	})

	conf, err := loadConfiguration(*configLocation, in.set["config"])
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *dataFile != "" {
		conf.Data.Neighborhoods = *dataFile
	}
	if *listingsFile != "" {
		conf.Data.Listings = *listingsFile
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	table, err := loadTable(conf.Data)
	if err != nil {
		logger.Fatal("failed to load neighborhood data",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	req, err := buildRequest(conf, table, in)
	if err != nil {
		logger.Fatal("failed to build evaluation request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result, err := forecast.NewEngine(logger, conf.Recommendation).Recompute(req)
	if err != nil {
		logger.Fatal("failed to evaluate property",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(result); err != nil {
			logger.Fatal("failed to write result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

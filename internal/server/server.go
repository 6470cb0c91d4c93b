package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/property-forecast/internal/cache"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/recommend"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/neighborhood"
	"github.com/iwvelando/property-forecast/pkg/output"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Options wires the handler to its collaborators. Every field is optional.
type Options struct {
	Engine *forecast.Engine
	Table  *neighborhood.Table
	Cache  cache.Cache
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	engine         *forecast.Engine
	table          *neighborhood.Table
	cache          cache.Cache
}

// NewHandler constructs the HTTP handler that serves the evaluation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	engine := opts.Engine
	if engine == nil {
		engine = forecast.NewEngine(logger, recommend.DefaultRules())
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		engine:         engine,
		table:          opts.Table,
		cache:          opts.Cache,
	}

	mux := http.NewServeMux()

	// Evaluation with explicit inputs
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)

	// Evaluation resolved from the neighborhood table
	mux.HandleFunc("/api/neighborhoods/evaluate", h.handleNeighborhoodEvaluate)

	mux.HandleFunc("/api/neighborhoods", h.handleNeighborhoods)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type evaluateResponse struct {
	Result       forecast.Result            `json:"result"`
	CSV          string                     `json:"csv"`
	Neighborhood *neighborhood.Neighborhood `json:"neighborhood,omitempty"`
	Listing      *neighborhood.Listing      `json:"listing,omitempty"`
}

type neighborhoodRequest struct {
	Neighborhood string                `json:"neighborhood"`
	Listing      string                `json:"listing,omitempty"`
	PurchaseType property.PurchaseType `json:"purchaseType,omitempty"`
	SizeSqm      float64               `json:"sizeSqm,omitempty"`
	Financing    property.Financing    `json:"financing"`
	Assumptions  property.Assumptions  `json:"assumptions"`
}

type neighborhoodSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Zone         string  `json:"zone"`
	ZoneLabel    string  `json:"zoneLabel"`
	Band         string  `json:"band"`
	ResaleMedian float64 `json:"resaleMedian"`
	NewMedian    float64 `json:"newMedian"`
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req forecast.Request
	if !h.decode(w, r, &req, op) {
		return
	}

	h.evaluate(r.Context(), w, req, evaluateResponse{}, op)
}

func (h *handler) handleNeighborhoodEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleNeighborhoodEvaluate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.table == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "no neighborhood table loaded", op)
		return
	}

	var payload neighborhoodRequest
	if !h.decode(w, r, &payload, op) {
		return
	}
	if strings.TrimSpace(payload.Neighborhood) == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing neighborhood", op)
		return
	}

	n, err := h.table.Lookup(payload.Neighborhood)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	var listing *neighborhood.Listing
	if payload.Listing != "" {
		l, err := h.table.ListingFor(n, payload.Listing)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		listing = &l
	}

	req := forecast.Request{
		Property:    n.ResolveProperty(payload.PurchaseType, payload.SizeSqm, listing),
		Profile:     n.Profile(),
		Financing:   payload.Financing,
		Assumptions: payload.Assumptions,
	}
	h.evaluate(r.Context(), w, req, evaluateResponse{Neighborhood: &n, Listing: listing}, op)
}

func (h *handler) handleNeighborhoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.table == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "no neighborhood table loaded", "server.handleNeighborhoods")
		return
	}

	ids := h.table.IDs()
	summaries := make([]neighborhoodSummary, 0, len(ids))
	for _, id := range ids {
		n := h.table.Neighborhoods[id]
		summaries = append(summaries, neighborhoodSummary{
			ID:           n.ID,
			Name:         n.Name,
			Zone:         n.Zone,
			ZoneLabel:    neighborhood.ZoneLabel(n.Zone),
			Band:         n.Band().String(),
			ResaleMedian: n.Resale.Median,
			NewMedian:    n.NewDevelopment.Median,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"neighborhoods": summaries,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a JSON body into dst, responding with an error when it cannot.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) evaluate(ctx context.Context, w http.ResponseWriter, req forecast.Request, response evaluateResponse, op string) {
	start := time.Now()

	normalized, err := forecast.Normalize(req)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	key := h.cacheKey(normalized, response, op)
	if body, ok := h.cacheGet(ctx, key, op); ok {
		w.Header().Set("X-Cache", "hit")
		h.writeRaw(w, http.StatusOK, body)
		return
	}

	result, err := h.engine.Recompute(normalized)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to evaluate property: %v", err), op)
		return
	}

	response.Result = result
	response.CSV = output.CsvString(result)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), op)
		return
	}
	body := buf.Bytes()
	h.cacheSet(ctx, key, body, op)

	h.logger.Info("evaluation computed",
		zap.String("op", op),
		zap.Float64("price", result.Request.Property.PurchasePrice),
		zap.String("recommendation", string(result.Recommendation.Category)),
		zap.Duration("duration", time.Since(start)),
	)

	if h.cache != nil {
		w.Header().Set("X-Cache", "miss")
	}
	h.writeRaw(w, http.StatusOK, body)
}

// cacheKey hashes the normalized request together with whatever the
// response echoes back, so equal inputs share an entry.
func (h *handler) cacheKey(req forecast.Request, response evaluateResponse, op string) string {
	if h.cache == nil {
		return ""
	}
	canonical, err := json.Marshal(struct {
		Request      forecast.Request           `json:"request"`
		Neighborhood *neighborhood.Neighborhood `json:"neighborhood,omitempty"`
		Listing      *neighborhood.Listing      `json:"listing,omitempty"`
	}{req, response.Neighborhood, response.Listing})
	if err != nil {
		h.logger.Warn("failed to build cache key", zap.String("op", op), zap.Error(err))
		return ""
	}
	return cache.Key("evaluate", canonical)
}

func (h *handler) cacheGet(ctx context.Context, key, op string) ([]byte, bool) {
	if h.cache == nil || key == "" {
		return nil, false
	}
	body, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("cache lookup failed", zap.String("op", op), zap.Error(err))
		return nil, false
	}
	if ok {
		h.logger.Debug("cache hit", zap.String("op", op), zap.String("key", key))
	}
	return body, ok
}

func (h *handler) cacheSet(ctx context.Context, key string, body []byte, op string) {
	if h.cache == nil || key == "" {
		return
	}
	if err := h.cache.Set(ctx, key, body); err != nil {
		h.logger.Warn("cache store failed", zap.String("op", op), zap.Error(err))
	}
}

// statusFor maps engine and lookup errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, neighborhood.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("evaluation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

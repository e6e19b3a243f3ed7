package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/digits"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
)

type requestIDKey struct{}

// ComputeResponse is the body of a successful /v1/{op} request.
type ComputeResponse struct {
	Op         string  `json:"op"`
	Algorithm  string  `json:"algorithm"`
	Result     string  `json:"result"`
	Digits     int     `json:"digits"`
	DurationMS float64 `json:"duration_ms"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Uptime      string                 `json:"uptime"`
	Calculators int                    `json:"calculators"`
	Memory      metrics.MemorySnapshot `json:"memory"`
	System      *sysmon.Stats          `json:"system,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, RequestID: w.Header().Get("X-Request-ID")})
}

// requestIDMiddleware propagates X-Request-ID, generating one when absent.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	}
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// parseOperand reads a required decimal operand from the query string.
func (s *Server) parseOperand(r *http.Request, name string) (*bigunsigned.Uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, apperrors.ValidationError{Field: name, Message: "is required"}
	}
	if limit := s.cfg.Security.MaxDigits; limit > 0 && len(raw) > limit {
		return nil, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("exceeds %d digits", limit)}
	}
	v, err := bigunsigned.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// statusFor maps a computation or validation error to an HTTP status.
func statusFor(err error) int {
	var verr apperrors.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, digits.ErrInvalidDigitCharacter):
		return http.StatusBadRequest
	case errors.Is(err, bigunsigned.ErrNegativeResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	op, err := calc.ParseOperation(r.PathValue("op"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = s.cfg.DefaultAlgo
	}
	c, ok := s.calculators[algo]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown algorithm %q", algo))
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "http."+op.String(), trace.WithAttributes(
		attribute.String("http.request_id", requestID(r.Context())),
		attribute.String("calc.calculator", algo),
	))
	defer span.End()

	x, err := s.parseOperand(r, "x")
	var y *bigunsigned.Uint
	if err == nil {
		y, err = s.parseOperand(r, "y")
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.compute(ctx, w, c, op, x, y)
}

func (s *Server) compute(ctx context.Context, w http.ResponseWriter, c calc.Calculator, op calc.Operation, x, y *bigunsigned.Uint) {
	start := time.Now()
	z, err := c.Compute(ctx, op, x, y, s.cfg.Options)
	elapsed := time.Since(start)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			s.logger.Error("computation failed", err,
				logging.String("op", op.String()),
				logging.String("algo", c.Name()),
				logging.String("request_id", requestID(ctx)))
		}
		trace.SpanFromContext(ctx).SetStatus(codes.Error, err.Error())
		writeError(w, code, err.Error())
		return
	}

	s.logger.Debug("computation finished",
		logging.String("op", op.String()),
		logging.String("algo", c.Name()),
		logging.Int("digits", z.Len()),
		logging.Duration("elapsed", elapsed))
	writeJSON(w, http.StatusOK, ComputeResponse{
		Op:         op.String(),
		Algorithm:  c.Name(),
		Result:     z.String(),
		Digits:     z.Len(),
		DurationMS: float64(elapsed.Microseconds()) / 1000,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp := HealthResponse{
		Status:      "ok",
		Uptime:      time.Since(s.started).Round(time.Second).String(),
		Calculators: len(s.calculators),
		Memory:      s.memory.Snapshot(),
	}
	if sys, err := sysmon.Sample(r.Context()); err == nil {
		resp.System = &sys
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

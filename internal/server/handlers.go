// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/credit-engine/internal/assess"
	"github.com/pdiddy/credit-engine/internal/financial"
	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/psychometric"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// financialRequest mirrors types.FinancialProfile with every field required.
// Pointers distinguish an explicit zero from an absent field.
type financialRequest struct {
	Income              *float64 `json:"income" validate:"required"`
	Revenue             *float64 `json:"revenue" validate:"required"`
	Debt                *float64 `json:"debt" validate:"required"`
	CreditUtilization   *float64 `json:"credit_utilization" validate:"required"`
	LoanRepayment       *float64 `json:"loan_repayment" validate:"required"`
	BusinessAge         *float64 `json:"business_age" validate:"required"`
	TransactionPatterns *float64 `json:"transaction_patterns" validate:"required"`
	GrowthRate          *float64 `json:"growth_rate" validate:"required"`
}

func (r financialRequest) profile() types.FinancialProfile {
	return types.FinancialProfile{
		Income:              *r.Income,
		Revenue:             *r.Revenue,
		Debt:                *r.Debt,
		CreditUtilization:   *r.CreditUtilization,
		LoanRepayment:       *r.LoanRepayment,
		BusinessAge:         *r.BusinessAge,
		TransactionPatterns: *r.TransactionPatterns,
		GrowthRate:          *r.GrowthRate,
	}
}

type psychometricRequest struct {
	RiskTolerance           *int `json:"risk_tolerance" validate:"required"`
	FinancialResponsibility *int `json:"financial_responsibility" validate:"required"`
	FuturePlanning          *int `json:"future_planning" validate:"required"`
	ImpulseControl          *int `json:"impulse_control" validate:"required"`
	LoanAttitude            *int `json:"loan_attitude" validate:"required"`
}

func (r psychometricRequest) profile() types.PsychometricProfile {
	return types.PsychometricProfile{
		RiskTolerance:           *r.RiskTolerance,
		FinancialResponsibility: *r.FinancialResponsibility,
		FuturePlanning:          *r.FuturePlanning,
		ImpulseControl:          *r.ImpulseControl,
		LoanAttitude:            *r.LoanAttitude,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// requestError carries the HTTP status a decode or validation failure maps to.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. Syntax errors map to
// 400; type mismatches and missing required fields map to 422.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr):
			return &requestError{http.StatusUnprocessableEntity, fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)}
		case errors.As(err, &maxErr):
			return &requestError{http.StatusRequestEntityTooLarge, "request body too large"}
		case errors.Is(err, io.EOF):
			return &requestError{http.StatusBadRequest, "request body is empty"}
		default:
			return &requestError{http.StatusBadRequest, "malformed JSON: " + err.Error()}
		}
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &requestError{http.StatusUnprocessableEntity, describe(verrs)}
		}
		return &requestError{http.StatusUnprocessableEntity, err.Error()}
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	sort.Strings(fields)
	return "missing required field(s): " + strings.Join(fields, ", ")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

// handleFinancial handles POST /calculate_basic_score.
func (s *Server) handleFinancial(w http.ResponseWriter, r *http.Request) {
	var req financialRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeRequestError(w, err)
		return
	}
	res := financial.Score(req.profile())
	s.metrics.ObserveScore(res)
	s.writeJSON(w, http.StatusOK, res)
}

// handlePsychometric handles POST /calculate_psychometric_score.
func (s *Server) handlePsychometric(w http.ResponseWriter, r *http.Request) {
	var req psychometricRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeRequestError(w, err)
		return
	}
	res := psychometric.Score(req.profile())
	s.metrics.ObserveScore(res)
	s.writeJSON(w, http.StatusOK, res)
}

// handleNews handles POST /calculate_news_credit_score. A query with no
// articles is answered with 200 and an error payload.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		s.writeError(w, http.StatusServiceUnavailable, "news scoring is not configured")
		return
	}

	var req types.SentimentQuery
	if err := s.decode(w, r, &req); err != nil {
		s.writeRequestError(w, err)
		return
	}

	res, err := s.news.Score(r.Context(), req.Query)
	switch {
	case errors.Is(err, news.ErrNoArticles):
		s.metrics.ObserveNoArticles()
		s.writeError(w, http.StatusOK, err.Error())
	case err != nil:
		s.log.Error().Err(err).Str("query", req.Query).Msg("news scoring failed")
		s.writeError(w, http.StatusBadGateway, "sentiment classification failed")
	default:
		s.metrics.ObserveScore(res)
		s.writeJSON(w, http.StatusOK, res)
	}
}

// handleAssess handles POST /assess.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var app types.Applicant
	if err := s.decode(w, r, &app); err != nil {
		s.writeRequestError(w, err)
		return
	}

	out, err := s.assessor.Assess(r.Context(), app)
	switch {
	case errors.Is(err, assess.ErrEmptyApplicant):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		s.log.Error().Err(err).Str("applicant", app.ID).Msg("assessment failed")
		s.writeError(w, http.StatusBadGateway, "assessment failed")
	default:
		s.writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var re *requestError
	if errors.As(err, &re) {
		s.writeError(w, re.status, re.msg)
		return
	}
	s.writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

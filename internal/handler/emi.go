package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/auth"
	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// EMIService is the EMI use-case surface the handler depends on
type EMIService interface {
	Calculate(ctx context.Context, userID string, request *domain.CalculateEMIRequest) (*domain.EMICalculation, *domain.EMIResult, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error)
	GetCalculation(ctx context.Context, userID string, id uuid.UUID) (*domain.EMICalculation, *domain.EMIResult, error)
	DeleteCalculation(ctx context.Context, userID string, id uuid.UUID) error
}

type EMIHandler struct {
	service   EMIService
	validator *validator.Validate
}

func NewEMIHandler(service EMIService) *EMIHandler {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &EMIHandler{
		service:   service,
		validator: v,
	}
}

// Calculate handles POST /api/v1/emi/calculate
func (h *EMIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var request domain.CalculateEMIRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.badRequestBody(w, err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, fe := range validationErrors {
				fields[fe.Field()] = "is required"
			}
			response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidTerms,
				"Missing required fields", fields)
			return
		}
		response.BadRequest(w, "Invalid request", err)
		return
	}

	calculation, result, err := h.service.Calculate(r.Context(), userID, &request)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, domain.CalculateEMIResponse{
		Calculation: calculation,
		Result:      result,
	})
}

// GetHistory handles GET /api/v1/emi/history
func (h *EMIHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidHistoryLimit,
				"limit must be an integer", map[string]string{"limit": "must be an integer"})
			return
		}
		limit = parsed
	}

	calculations, err := h.service.GetHistory(r.Context(), userID, limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, domain.HistoryResponse{
		Calculations: calculations,
		Count:        len(calculations),
	})
}

// GetCalculation handles GET /api/v1/emi/{id}
func (h *EMIHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := calculationID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	calculation, result, err := h.service.GetCalculation(r.Context(), userID, id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, domain.CalculationDetailResponse{
		Calculation: calculation,
		Schedule:    result.Schedule,
	})
}

// DeleteCalculation handles DELETE /api/v1/emi/{id}
func (h *EMIHandler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := calculationID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.service.DeleteCalculation(r.Context(), userID, id); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id.String()})
}

func calculationID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, customError.WrapInvalidCalculationID(raw)
	}
	return id, nil
}

func (h *EMIHandler) badRequestBody(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidTerms,
			"Invalid field type", map[string]string{typeErr.Field: "must be a " + expectedKind(typeErr.Type)})
		return
	}
	if errors.Is(err, io.EOF) {
		response.BadRequest(w, "Request body is required", nil)
		return
	}
	response.BadRequest(w, "Invalid request body", err)
}

func expectedKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "whole number"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}

// handleError maps service errors onto HTTP status codes
func (h *EMIHandler) handleError(w http.ResponseWriter, err error) {
	var termsErr *customError.InvalidTermsError
	if errors.As(err, &termsErr) {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidTerms,
			termsErr.Error(), map[string]string{termsErr.Field: termsErr.Reason})
		return
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		switch {
		case errors.Is(err, customError.ErrCalculationNotFound):
			response.ErrorWithCode(w, http.StatusNotFound, businessErr.Code, businessErr.Message, nil)
		case errors.Is(err, customError.ErrInvalidCalculationRef),
			errors.Is(err, customError.ErrInvalidHistoryLimit):
			response.ErrorWithCode(w, http.StatusBadRequest, businessErr.Code, businessErr.Message, nil)
		default:
			response.ErrorWithCode(w, http.StatusInternalServerError, businessErr.Code, businessErr.Message, nil)
		}
		return
	}

	response.InternalServerError(w, "Internal server error", nil)
}

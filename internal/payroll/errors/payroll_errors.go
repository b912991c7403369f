package payrollerrors

import (
	"net/http"

	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
)

var (
	ErrMissingRunFields = apperror.New(
		apperror.CodeValidation,
		"Please provide all required fields",
		http.StatusBadRequest,
	)
	ErrNoEmployees = apperror.New(
		apperror.CodeValidation,
		"No employees to run payroll for.",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid period date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPeriodOutOfOrder = apperror.New(
		apperror.CodeInvalidInput,
		"periodStart must be before or equal periodEnd",
		http.StatusBadRequest,
	)
	ErrRunAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A payroll run already exists for this period",
		http.StatusConflict,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll run not found",
		http.StatusNotFound,
	)
)

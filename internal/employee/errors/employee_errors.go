package employeeerrors

import (
	"net/http"

	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNameRequired = apperror.New(
		apperror.CodeValidation,
		"employeeName is required",
		http.StatusBadRequest,
	)
	ErrSINRequired = apperror.New(
		apperror.CodeValidation,
		"sin is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidNextPayDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid nextPayDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

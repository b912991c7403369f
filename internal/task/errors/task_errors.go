package taskerrors

import (
	"net/http"

	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
)

var (
	ErrTaskTextRequired = apperror.New(
		apperror.CodeValidation,
		"Task text cannot be empty.",
		http.StatusBadRequest,
	)
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task id",
		http.StatusBadRequest,
	)
)

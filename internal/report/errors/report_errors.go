package reporterrors

import (
	"net/http"

	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
)

var ErrInvalidPeriod = apperror.New(
	apperror.CodeInvalidInput,
	"Unknown report period, expected this-year or last-quarter",
	http.StatusBadRequest,
)

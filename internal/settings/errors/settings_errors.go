package settingserrors

import (
	"net/http"

	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
)

var ErrInvalidOvertimeMultiplier = apperror.New(
	apperror.CodeValidation,
	"overtimeRateMultiplier must be greater than zero",
	http.StatusBadRequest,
)

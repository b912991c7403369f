package employee

import (
	"errors"

	employeeerrors "github.com/Netrahoni/SmartPayroll/internal/employee/errors"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	return apperror.Persistence(err)
}

package validators

import (
	"syncBoard/internal/enums"
	"syncBoard/internal/errs"
	"syncBoard/internal/models"
)

func ValidateCreateBoard(body *models.CreateBoardRequestBody) []error {
	var errors []error
	if body == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}

	if body.Name == "" || len(body.Name) < 2 {
		errors = append(errors, errs.ErrInvalidBoardName)
	}

	if body.Security != "" && !ValidateSecurity(body.Security) {
		errors = append(errors, errs.ErrInvalidSecurity)
	}
	return errors
}

func ValidatePermission(permission enums.AccessLevel) bool {
	return permission == enums.ACCESS_LEVEL_EDIT || permission == enums.ACCESS_LEVEL_VIEW
}

func ValidateSecurity(security string) bool {
	return security == enums.BOARD_SECURITY_PUBLIC || security == enums.BOARD_SECURITY_PRIVATE
}

package domain

import (
	appErrors "typeahead/internal/errors"
)

func invalidOptionError(reason string, err error) error {
	return appErrors.New(appErrors.CodeInvalidOption, reason, err)
}

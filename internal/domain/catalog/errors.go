package catalog

import "rsv-catalog/internal/pkg/errs"

func errInvalid(msg string) error {
	return errs.Wrap(errs.ErrInvalidTemplate, msg)
}

package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
)

// translate maps a gorm error onto the application error kinds. The db must be
// opened with TranslateError so that constraint violations surface as gorm errors.
func translate(err error, entity string) error {
	var appErr *apperrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.Newf(apperrors.KindNotFound, "%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(apperrors.KindConflict, err, entity+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Wrap(apperrors.KindConflict, err, entity+" is still referenced")
	default:
		return apperrors.Internal(err, "failed to access "+entity)
	}
}

func notFound(entity string) error {
	return apperrors.Newf(apperrors.KindNotFound, "%s not found", entity)
}

package dashboard

import (
	"errors"
	"fmt"

	"github.com/mrlokans/navboard/internal/database"
)

var (
	ErrDuplicateName    = errors.New("a category with this name already exists")
	ErrDuplicateURL     = errors.New("a bookmark with this URL already exists")
	ErrProtectedDefault = errors.New("the default category cannot be deleted")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrInvalidInput     = errors.New("invalid input")
)

var domainErrors = []error{
	ErrDuplicateName,
	ErrDuplicateURL,
	ErrProtectedDefault,
	ErrCategoryNotFound,
	ErrBookmarkNotFound,
	ErrInvalidInput,
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classify maps an error coming out of a transaction onto the taxonomy.
// A unique-constraint violation becomes onDuplicate when it is set.
func classify(op string, err error, onDuplicate error) error {
	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return err
	case onDuplicate != nil && database.IsUniqueViolation(err):
		return onDuplicate
	default:
		return database.Wrap(op, err)
	}
}

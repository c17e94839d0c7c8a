package convert

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aerissecure/rubricconvert/ims"
	"github.com/aerissecure/rubricconvert/xlsx"
)

var (
	// ErrUnsupportedExtension is returned for inputs that are not .rbc,
	// .json or .xlsx files.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrMissingCriterionColumn is returned when a workbook has no
	// "Criterion (name and description)" column.
	ErrMissingCriterionColumn = xlsx.ErrMissingColumn
	// ErrNoCriteria is returned when an IMS document holds no criteria.
	ErrNoCriteria = ims.ErrNoCriteria
)

// InputError reports a conversion that failed because of its input file.
// Nothing is written when one is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func inputError(path string, err error) error {
	return &InputError{Path: path, Err: err}
}

// IsInputError reports whether err, or anything it wraps, is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

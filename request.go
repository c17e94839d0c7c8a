package convert

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request describes a conversion chosen by file extension.
type Request struct {
	Input string `validate:"required"`
	// Output defaults to OutputPath(Input, Format).
	Output string
	// Format applies to spreadsheet input only; it defaults to turnitin.
	Format     Format `validate:"omitempty,oneof=turnitin ims"`
	RubricName string
	LegacyIMS  bool
}

// Validate checks the request fields. Format is only checked for spreadsheet
// input, since nothing else reads it.
func (r *Request) Validate() error {
	checked := *r
	if !isWorkbook(r.Input) {
		checked.Format = ""
	}
	validate := validator.New()
	return validate.Struct(&checked)
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// OutputPath names the file a conversion of input writes when no output is
// given: .rbc and .json become .xlsx, and .xlsx becomes .rbc or .json
// depending on format.
func OutputPath(input string, format Format) (string, error) {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	switch strings.ToLower(ext) {
	case ".rbc", ".json":
		return base + ".xlsx", nil
	case ".xlsx":
		if format == FormatIMS {
			return base + ".json", nil
		}
		return base + ".rbc", nil
	}
	return "", inputError(input, ErrUnsupportedExtension)
}

// Convert validates req and runs the conversion its input extension calls
// for. Options in opts apply after those derived from req.
func Convert(req Request, opts ...Option) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, inputError(req.Input, err)
	}
	if req.Format == "" || !isWorkbook(req.Input) {
		req.Format = FormatTurnitin
	}

	output := req.Output
	if output == "" {
		var err error
		if output, err = OutputPath(req.Input, req.Format); err != nil {
			return nil, err
		}
	}

	opts = append([]Option{
		WithRubricName(req.RubricName),
		WithLegacyIMS(req.LegacyIMS),
	}, opts...)

	switch strings.ToLower(filepath.Ext(req.Input)) {
	case ".rbc", ".json":
		return RBCToExcel(req.Input, output, opts...)
	case ".xlsx":
		if req.Format == FormatIMS {
			return ExcelToIMS(req.Input, output, opts...)
		}
		return ExcelToRBC(req.Input, output, opts...)
	}
	return nil, inputError(req.Input, ErrUnsupportedExtension)
}

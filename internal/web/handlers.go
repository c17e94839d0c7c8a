package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nuid"
	"github.com/pkg/errors"

	convert "github.com/aerissecure/rubricconvert"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WarningsHeader carries the truncation warnings of a conversion.
const WarningsHeader = "X-Rubric-Warnings"

// Form fields sent with an uploaded rubric file.
type ConvertRequest struct {
	//
	// output schema for spreadsheet uploads, turnitin (default) or ims
	//
	Format string `form:"format" query:"format" validate:"omitempty,oneof=turnitin ims"`
	//
	// rubric name for spreadsheet uploads, defaults to the upload's
	// file name with underscores as spaces
	//
	RubricName string `form:"rubricName" query:"rubricName" validate:"max=200"`
	//
	// write the legacy criteria/levels IMS layout
	//
	Legacy bool `form:"legacy" query:"legacy"`
}

// converts an uploaded rubric and returns the result
// as a file download, warnings are listed in the
// X-Rubric-Warnings response header
func (s *Service) buildConvertHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		cr := &ConvertRequest{}
		if err := c.Bind(cr); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := c.Validate(cr); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		dir, err := s.newWorkDir()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		defer os.RemoveAll(dir)

		in, err := saveUpload(c, dir)
		if err != nil {
			return err
		}

		format := convert.Format(cr.Format)
		if format == "" {
			format = convert.FormatTurnitin
		}
		out, err := convert.OutputPath(in, format)
		if err != nil {
			return conversionError(err)
		}

		res, err := convert.Convert(convert.Request{
			Input:      in,
			Output:     out,
			Format:     format,
			RubricName: cr.RubricName,
			LegacyIMS:  cr.Legacy,
		}, convert.WithLogger(c.Logger()))
		if err != nil {
			return conversionError(err)
		}

		if len(res.Warnings) > 0 {
			c.Response().Header().Set(WarningsHeader, strings.Join(res.Warnings, "; "))
		}
		return c.Attachment(res.Output, filepath.Base(res.Output))
	}
}

// renders an uploaded rubric as an html table
func (s *Service) buildPreviewHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		dir, err := s.newWorkDir()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		defer os.RemoveAll(dir)

		in, err := saveUpload(c, dir)
		if err != nil {
			return err
		}

		html, err := convert.Preview(in)
		if err != nil {
			return conversionError(err)
		}
		return c.HTML(http.StatusOK, html)
	}
}

// returns the example rubric workbook
func (s *Service) buildExampleHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		var buf bytes.Buffer
		if err := convert.WriteExampleWorkbook(&buf); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="example_rubric.xlsx"`)
		return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
	}
}

// newWorkDir creates a private directory for one request.
func (s *Service) newWorkDir() (string, error) {
	dir := filepath.Join(s.workDir, nuid.Next())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", errors.Wrap(err, "cannot create request directory")
	}
	return dir, nil
}

// saveUpload copies the "file" form field into dir, keeping its base name.
func saveUpload(c echo.Context, dir string) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "must supply a rubric file in the 'file' field")
	}

	name := filepath.Base(fh.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "upload has no file name")
	}

	path := filepath.Join(dir, name)
	if err := copyUpload(fh, path); err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return path, nil
}

func copyUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "cannot open upload")
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot store upload")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrap(err, "cannot store upload")
	}
	return dst.Close()
}

// conversionError maps input errors to 400 and anything else to 500.
func conversionError(err error) error {
	if convert.IsInputError(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// Package convert moves grading rubrics between Turnitin RBC exports, IMS
// CFRubric documents and an editable spreadsheet layout.
//
// Every entry point reads one input file, builds the complete output in
// memory and only then publishes it, so a failed conversion leaves nothing
// behind. Name truncations are reported as warnings on the Result.
package convert

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/detect"
	"github.com/aerissecure/rubricconvert/ims"
	"github.com/aerissecure/rubricconvert/internal/fsutil"
	"github.com/aerissecure/rubricconvert/internal/ids"
	"github.com/aerissecure/rubricconvert/internal/schemas"
	"github.com/aerissecure/rubricconvert/rbc"
	"github.com/aerissecure/rubricconvert/xlsx"
)

// Format selects the JSON schema written for spreadsheet input.
type Format string

const (
	FormatTurnitin Format = "turnitin"
	FormatIMS      Format = "ims"
)

const outputPerm = 0o644

// Logger receives conversion summaries and warnings. Both the gommon logger
// and echo.Logger satisfy it.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NewLogger returns the default logger: INFO and above on stderr.
func NewLogger() *log.Logger {
	l := log.New("rubric")
	l.SetOutput(os.Stderr)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(log.INFO)
	return l
}

type config struct {
	rubricName string
	legacyIMS  bool
	logger     Logger
	now        func() time.Time
}

// Option configures a single conversion call.
type Option func(*config)

// WithRubricName overrides the rubric name taken from the input file name.
func WithRubricName(name string) Option {
	return func(c *config) { c.rubricName = name }
}

// WithLegacyIMS writes the older criteria/levels IMS layout instead of
// CFRubric.
func WithLegacyIMS(legacy bool) Option {
	return func(c *config) { c.legacyIMS = legacy }
}

func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithClock sets the time source for IMS timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func newConfig(opts []Option) *config {
	c := &config{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = NewLogger()
	}
	return c
}

// name returns the override, or the rubric name implied by path.
func (c *config) name(path string) string {
	if strings.TrimSpace(c.rubricName) != "" {
		return c.rubricName
	}
	return NameFromPath(path)
}

// Result describes a completed conversion.
type Result struct {
	Input  string
	Output string
	// Title is the rubric name as written.
	Title    string
	Criteria int
	// Columns counts scale or level columns.
	Columns  int
	Warnings []string
}

func (c *config) report(direction string, res *Result) {
	c.logger.Infof("%s: %q, %d criteria, %d columns -> %s", direction, res.Title, res.Criteria, res.Columns, res.Output)
	for _, w := range res.Warnings {
		c.logger.Warnf("%s", w)
	}
}

// valueColumns counts the columns of g other than the criterion label.
func valueColumns(g xlsx.Grid) int {
	if len(g.Columns) == 0 {
		return 0
	}
	return len(g.Columns) - 1
}

// NameFromPath derives a rubric name from a file name: the base name without
// extension, with underscores read as spaces.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// IsIMSFormat reports whether a decoded JSON document is an IMS rubric
// rather than a Turnitin export.
func IsIMSFormat(doc any) bool {
	return detect.IsIMS(doc)
}

// RBCToExcel converts an RBC or IMS JSON rubric at input into a workbook at
// output. The JSON flavour is detected from the document's keys.
func RBCToExcel(input, output string, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", input)
	}
	g, title, err := jsonGrid(input, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := xlsx.WriteGrid(&buf, g); err != nil {
		return nil, errors.Wrap(err, "cannot build workbook")
	}
	if err := fsutil.WriteFileAtomic(output, buf.Bytes(), outputPerm); err != nil {
		return nil, errors.Wrapf(err, "cannot write %s", output)
	}

	res := &Result{
		Input:    input,
		Output:   output,
		Title:    title,
		Criteria: len(g.Rows),
		Columns:  valueColumns(g),
	}
	c.report("json to workbook", res)
	return res, nil
}

// jsonGrid lays out an RBC or IMS document as a grid and returns its title.
func jsonGrid(path string, data []byte) (xlsx.Grid, string, error) {
	if !gjson.ValidBytes(data) {
		return xlsx.Grid{}, "", inputError(path, errors.New("not a valid JSON document"))
	}

	if detect.IsIMSJSON(data) {
		r, err := ims.Parse(data)
		if err != nil {
			return xlsx.Grid{}, "", inputError(path, err)
		}
		return r.ToGrid(), r.Title, nil
	}

	doc, err := rbc.Decode(data)
	if err != nil {
		return xlsx.Grid{}, "", inputError(path, err)
	}
	return rbc.FromDocument(doc).ToGrid(), doc.Name(), nil
}

// readWorkbook loads the grid of the workbook at path. Anything other than a
// filesystem failure is blamed on the input.
func readWorkbook(path string) (xlsx.Grid, error) {
	g, err := xlsx.ReadGridFile(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return xlsx.Grid{}, errors.Wrapf(err, "cannot read %s", path)
		}
		return xlsx.Grid{}, inputError(path, err)
	}
	return g, nil
}

// ExcelToRBC converts the workbook at input into an RBC export at output.
// Rubric, scale and criterion names longer than Turnitin accepts are
// truncated and reported in Result.Warnings.
func ExcelToRBC(input, output string, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	g, err := readWorkbook(input)
	if err != nil {
		return nil, err
	}

	var warnings cell.Warnings
	r, err := rbc.FromGrid(g, c.name(input), &warnings)
	if err != nil {
		return nil, inputError(input, err)
	}

	data, err := rbc.Encode(r.Document(ids.NewSequence()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode rbc document")
	}
	if err := publish(schemas.RBC, output, data); err != nil {
		return nil, err
	}

	res := &Result{
		Input:    input,
		Output:   output,
		Title:    r.Name,
		Criteria: len(r.Criteria),
		Columns:  len(r.Scales),
		Warnings: warnings,
	}
	c.report("workbook to rbc", res)
	return res, nil
}

// ExcelToIMS converts the workbook at input into an IMS document at output,
// CFRubric unless WithLegacyIMS is given. Empty cells produce no level.
func ExcelToIMS(input, output string, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	g, err := readWorkbook(input)
	if err != nil {
		return nil, err
	}

	r, err := ims.FromGrid(g, c.name(input))
	if err != nil {
		return nil, inputError(input, err)
	}

	var (
		doc    any
		schema string
	)
	if c.legacyIMS {
		doc, schema = r.LegacyDocument(), schemas.IMSLegacy
	} else {
		doc, schema = r.CFDocument(c.now()), schemas.CFRubric
	}

	data, err := ims.Encode(doc)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode ims document")
	}
	if err := publish(schema, output, data); err != nil {
		return nil, err
	}

	res := &Result{
		Input:    input,
		Output:   output,
		Title:    r.Title,
		Criteria: len(r.Criteria),
		Columns:  r.MaxLevels(),
	}
	c.report("workbook to ims", res)
	return res, nil
}

// publish checks data against schema and writes it to path.
func publish(schema, path string, data []byte) error {
	if err := schemas.ValidateJSON(schema, data); err != nil {
		return errors.Wrap(err, "generated document rejected")
	}
	if err := fsutil.WriteFileAtomic(path, data, outputPerm); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}

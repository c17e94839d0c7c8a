package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	convert "github.com/aerissecure/rubricconvert"
	"github.com/aerissecure/rubricconvert/internal/fsutil"
)

func newExampleCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "example [output_file]",
		Short: "Write an example rubric workbook to start from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			output := "example_rubric.xlsx"
			if len(args) == 1 {
				output = args[0]
			}
			res, err := convert.WriteExample(output, convert.WithLogger(newLogger(stderr)))
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %s\n", res.Output)
			return nil
		},
	}
}

func newPreviewCmd(stdout io.Writer) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "preview <input_file>",
		Short: "Render a rubric as an HTML table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			html, err := convert.Preview(args[0])
			if err != nil {
				return err
			}
			if outputFile == "" {
				_, err = io.WriteString(stdout, html)
				return err
			}
			if err := fsutil.WriteFileAtomic(outputFile, []byte(html), 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", outputFile)
			}
			fmt.Fprintf(stdout, "Wrote %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output_file", "o", "", "HTML output path (default: stdout)")
	return cmd
}

func newDocxCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		outputFile string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "docx <input_file>",
		Short: "Export a rubric as a printable Word table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			output := outputFile
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".docx"
			}
			res, err := convert.ExportDocument(args[0], output,
				convert.WithRubricName(title),
				convert.WithLogger(newLogger(stderr)),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %s\n", res.Output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output_file", "o", "", "Output path (default: input name with .docx)")
	cmd.Flags().StringVarP(&title, "rubric-name", "r", "", "Heading printed above the table")
	return cmd
}

func newInspectCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input_file>",
		Short: "Print an outline of a rubric file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			summary, err := convert.Inspect(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(summary); err != nil {
				return errors.Wrap(err, "failed to encode summary")
			}
			return enc.Close()
		},
	}
}

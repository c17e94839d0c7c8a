// Package main implements the rubric-convert CLI, which converts rubrics
// between Turnitin (.rbc), IMS (.json) and Excel (.xlsx) files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	convert "github.com/aerissecure/rubricconvert"
)

const usage = `Convert a rubric between Turnitin, IMS and Excel formats.

  .rbc  (Turnitin) -> .xlsx
  .json (IMS)      -> .xlsx
  .xlsx            -> .rbc (--format turnitin) or .json (--format ims)

Editing the .xlsx file:
  - The first row holds the column names. Renaming a column renames its
    scale (IMS ignores the names).
  - Put a criterion's title on the first line of its "Criterion (name and
    description)" cell and its description on the following lines.
  - Write each scale cell as "description [value]", for example
    "Clear and concise [5]".`

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer) *log.Logger {
	l := log.New("rubric-convert")
	l.SetOutput(w)
	l.SetHeader("${level}")
	l.SetLevel(log.INFO)
	return l
}

func defaultFormat() string {
	if f := os.Getenv("RUBRIC_FORMAT"); f != "" {
		return f
	}
	return string(convert.FormatTurnitin)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		outputFile string
		rubricName string
		format     string
		legacyIMS  bool
	)

	cmd := &cobra.Command{
		Use:           "rubric-convert <input_file>",
		Short:         "Convert rubrics between Turnitin, IMS and Excel",
		Long:          usage,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := convert.Convert(convert.Request{
				Input:      args[0],
				Output:     outputFile,
				Format:     convert.Format(format),
				RubricName: rubricName,
				LegacyIMS:  legacyIMS,
			}, convert.WithLogger(newLogger(stderr)))
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Converted %s -> %s\n", res.Input, res.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output_file", "o", "", "Output file path (default: input name with the converted extension)")
	cmd.Flags().StringVarP(&rubricName, "rubric-name", "r", "", "Rubric name for Excel input (default: input file name)")
	cmd.Flags().StringVarP(&format, "format", "f", defaultFormat(), "Output format for Excel input: turnitin or ims")
	cmd.Flags().BoolVar(&legacyIMS, "legacy", false, "Write the legacy criteria/levels IMS layout")

	cmd.AddCommand(
		newExampleCmd(stdout, stderr),
		newPreviewCmd(stdout),
		newDocxCmd(stdout, stderr),
		newInspectCmd(stdout),
	)
	return cmd
}

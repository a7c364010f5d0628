package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

var (
	ocrConfidence float64
	ocrJSON       bool
	classifyJSON  bool
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [file|-]",
	Short: "Resolve a medicine from OCR text",
	Long: `Reads text recognised from a photo of a medicine package, extracts the
most likely medicine name and resolves it.

The text is read from the file argument, or from standard input when the
argument is "-" or omitted.`,
	Example: `  medlens ocr label.txt
  tesseract box.jpg - | medlens ocr --confidence 0.8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOCR,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Score how likely text describes a medicine",
	Long: `Scores text against dosage, form, route, packaging, medical and drug-name
patterns and reports whether it looks medicine-related.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	ocrCmd.Flags().Float64Var(&ocrConfidence, "confidence", 0, "the OCR engine's own confidence, 0 to 1")
	ocrCmd.Flags().BoolVar(&ocrJSON, "json", false, "output the analysis and resolution as JSON")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the classification as JSON")
	rootCmd.AddCommand(ocrCmd)
	rootCmd.AddCommand(classifyCmd)
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func runOCR(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}
	if ocrConfidence < 0 || ocrConfidence > 1 {
		return fmt.Errorf("%w: --confidence must be between 0 and 1", domain.ErrInvalidInput)
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	res, err := resolverService.ResolveOCR(cmd.Context(), domain.OCRText{RawText: raw, Confidence: ocrConfidence})
	if err != nil {
		return fmt.Errorf("ocr resolve failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if ocrJSON {
		return writeJSON(out, res)
	}

	analysis := res.Analysis
	if analysis.MedicineName == "" {
		fmt.Fprintln(out, "No medicine name found in the text")
		return nil
	}
	fmt.Fprintf(out, "Extracted name: %s\n", analysis.MedicineName)
	fmt.Fprintf(out, "Medicine likelihood: %.2f\n\n", analysis.Confidence)
	writeResolution(out, &res.Resolution)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	if textService == nil {
		return errors.New("text service not configured")
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	likelihood := textService.Classify(text)
	if classifyJSON {
		return writeJSON(cmd.OutOrStdout(), likelihood)
	}
	writeLikelihood(cmd.OutOrStdout(), likelihood)
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

var applyCmd = &cobra.Command{
	Use:   "apply <operation>",
	Short: "Apply one catalog operation to an image file",
	Long: `Apply one catalog operation to an image file and write the result in the
same format, or in --format when given.

Examples:
  image-transform-mcp apply resize --in photo.jpg --out small.jpg --params '{"width":320,"height":240,"keep_aspect_ratio":true}'
  image-transform-mcp apply seam_carve_width --in wide.png --out narrow.png --params '{"width":400}'
  image-transform-mcp apply grayscale --in photo.png > gray.png`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("in", "i", "", "input image file (- for stdin)")
	applyCmd.Flags().StringP("out", "o", "", "output file (stdout when empty)")
	applyCmd.Flags().StringP("params", "p", "", "operation parameters as a JSON object")
	applyCmd.Flags().StringP("format", "f", "", "re-encode the result in this format")
	_ = applyCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	params, _ := cmd.Flags().GetString("params")
	format, _ := cmd.Flags().GetString("format")

	input, err := readInput(cmd.InOrStdin(), in)
	if err != nil {
		return err
	}

	op, err := ops.Decode(args[0], json.RawMessage(params))
	if err != nil {
		return err
	}

	runner := newRunner(nil)
	var result []byte
	if format != "" {
		result, err = runner.ApplyAs(input, op, format)
	} else {
		result, err = runner.Apply(input, op)
	}
	if err != nil {
		return err
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(result)
		return err
	}
	if err := os.WriteFile(out, result, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

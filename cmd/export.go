package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportPretty bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored client list as JSON",
	Long: `Write the stored slot exactly as persisted, or indented with --pretty.

Examples:
  clientdb export
  clientdb export --pretty -o clients.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportPretty, "pretty", false, "indent the JSON")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	data, err := s.Raw(ctx)
	if err != nil {
		return err
	}

	if exportPretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("stored slot is not valid JSON: %w", err)
		}

		data = buf.Bytes()
	}

	data = append(data, '\n')

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	return writeFile(exportOutput, data)
}

// writeFile creates path and writes data, reporting a failed close.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose shows the full value instead of a truncated preview.
	Verbose bool
	// ShowValue prints the value at all.
	ShowValue bool
	// Append adds to an existing file instead of replacing it.
	Append bool
}

// WriteResultToFile writes a result with a short header to
// config.OutputFile, creating parent directories as needed. An empty path is
// a no-op.
func WriteResultToFile(result *bigunsigned.Uint, op calc.Operation, duration time.Duration, algo string, config OutputConfig) (err error) {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if config.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(config.OutputFile, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", op)
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Digits: %d\n", result.Len())
	fmt.Fprintf(file, "\n")
	_, err = fmt.Fprintf(file, "%s =\n%s\n", resultLabel(op), result.String())
	return err
}

// FormatQuietResult returns the bare decimal value, for scripting.
func FormatQuietResult(result *bigunsigned.Uint) string {
	return result.String()
}

// DisplayQuietResult prints the bare decimal value on its own line.
func DisplayQuietResult(out io.Writer, result *bigunsigned.Uint) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result in the mode selected by config
// and saves it when config.OutputFile is set.
func DisplayResultWithConfig(out io.Writer, result *bigunsigned.Uint, op calc.Operation, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, op, duration, config.Verbose, false, config.ShowValue, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, op, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

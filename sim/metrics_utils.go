// sim/metrics_utils.go
package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// WriteResults prints a "=== title ===" header and v as indented JSON to stdout.
// When outputPath is non-empty the same JSON is written there.
func WriteResults(title string, v any, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", title, err)
	}
	fmt.Printf("=== %s ===\n", title)
	fmt.Println(string(data))

	if outputPath == "" {
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s to %s: %w", title, outputPath, err)
	}
	logrus.Infof("Metrics written to: %s", outputPath)
	return nil
}

// SavetoFile writes data as comma-separated integers to fileName.
func SavetoFile(data []int, fileName string) (err error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	for i, f := range data {
		if i > 0 {
			if _, err := writer.WriteString(", "); err != nil {
				return fmt.Errorf("writing to %s: %w", fileName, err)
			}
		}
		if _, err := fmt.Fprint(writer, f); err != nil {
			return fmt.Errorf("writing int %d to %s: %w", f, fileName, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing writer for file %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote %d values to '%s'", len(data), fileName)
	return nil
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir        string
	growthFile *os.File

	// Track if headers have been written
	growthHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "growth.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating growth.csv: %w", err)
	}
	om.growthFile = f

	return om, nil
}

// WriteStats appends one YearStats row to growth.csv.
func (om *OutputManager) WriteStats(stats YearStats) error {
	if om == nil {
		return nil
	}

	records := []YearStats{stats}

	if !om.growthHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.growthFile); err != nil {
			return fmt.Errorf("writing growth stats: %w", err)
		}
		om.growthHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.growthFile); err != nil {
			return fmt.Errorf("writing growth stats: %w", err)
		}
	}

	return nil
}

// Close closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.growthFile.Close()
}

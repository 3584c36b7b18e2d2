package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

// partRecord is one row of parts.csv.
type partRecord struct {
	ID       uint64  `csv:"id"`
	ParentID uint64  `csv:"parent_id"`
	Kind     string  `csv:"kind"`
	Material string  `csv:"material"`
	Size     float64 `csv:"size"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	QW       float64 `csv:"qw"`
	QX       float64 `csv:"qx"`
	QY       float64 `csv:"qy"`
	QZ       float64 `csv:"qz"`
}

// keyframeRecord is one row of keyframes.csv.
type keyframeRecord struct {
	PartID   uint64  `csv:"part_id"`
	Property string  `csv:"property"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	Frame    float64 `csv:"frame"`
	Relative bool    `csv:"relative"`
}

// eventRecord is one row of events.csv (fallen/removed notifications).
type eventRecord struct {
	PartID uint64  `csv:"part_id"`
	Event  string  `csv:"event"`
	Frame  float64 `csv:"frame"`
}

// CSVAdapter persists the event stream as CSV files in an output directory:
// parts.csv, keyframes.csv and events.csv.
type CSVAdapter struct {
	partsFile     *os.File
	keyframesFile *os.File
	eventsFile    *os.File

	parts     []partRecord
	keyframes []keyframeRecord
	events    []eventRecord

	// Track if headers have been written
	partsHeaderWritten     bool
	keyframesHeaderWritten bool
	eventsHeaderWritten    bool
}

// NewCSVAdapter creates the output directory and opens the CSV files.
func NewCSVAdapter(dir string) (*CSVAdapter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	a := &CSVAdapter{}

	var err error
	a.partsFile, err = os.Create(filepath.Join(dir, "parts.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating parts.csv: %w", err)
	}
	a.keyframesFile, err = os.Create(filepath.Join(dir, "keyframes.csv"))
	if err != nil {
		a.partsFile.Close()
		return nil, fmt.Errorf("creating keyframes.csv: %w", err)
	}
	a.eventsFile, err = os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		a.partsFile.Close()
		a.keyframesFile.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	return a, nil
}

func (a *CSVAdapter) CreatePart(id, parentID PartID, kind PartKind, tf geom.Transform, size float64, material string) {
	q := quat.Number(tf.Rot)
	a.parts = append(a.parts, partRecord{
		ID:       uint64(id),
		ParentID: uint64(parentID),
		Kind:     kind.String(),
		Material: material,
		Size:     size,
		X:        tf.Pos.X,
		Y:        tf.Pos.Y,
		Z:        tf.Pos.Z,
		QW:       q.Real,
		QX:       q.Imag,
		QY:       q.Jmag,
		QZ:       q.Kmag,
	})
}

func (a *CSVAdapter) AttachAnimation(id PartID, prop Property, value r3.Vec, frame float64, relative bool) {
	a.keyframes = append(a.keyframes, keyframeRecord{
		PartID:   uint64(id),
		Property: prop.String(),
		X:        value.X,
		Y:        value.Y,
		Z:        value.Z,
		Frame:    frame,
		Relative: relative,
	})
}

func (a *CSVAdapter) MarkFallen(id PartID, frame float64) {
	a.events = append(a.events, eventRecord{PartID: uint64(id), Event: "fallen", Frame: frame})
}

func (a *CSVAdapter) RemovePart(id PartID) {
	a.events = append(a.events, eventRecord{PartID: uint64(id), Event: "removed"})
}

// Flush writes all buffered rows to disk. Headers are written on the first
// flush of each file.
func (a *CSVAdapter) Flush() error {
	if len(a.parts) > 0 {
		if err := writeRecords(a.parts, a.partsFile, &a.partsHeaderWritten); err != nil {
			return fmt.Errorf("writing parts.csv: %w", err)
		}
		a.parts = a.parts[:0]
	}
	if len(a.keyframes) > 0 {
		if err := writeRecords(a.keyframes, a.keyframesFile, &a.keyframesHeaderWritten); err != nil {
			return fmt.Errorf("writing keyframes.csv: %w", err)
		}
		a.keyframes = a.keyframes[:0]
	}
	if len(a.events) > 0 {
		if err := writeRecords(a.events, a.eventsFile, &a.eventsHeaderWritten); err != nil {
			return fmt.Errorf("writing events.csv: %w", err)
		}
		a.events = a.events[:0]
	}
	return nil
}

// Close flushes pending rows and closes the files.
func (a *CSVAdapter) Close() error {
	err := a.Flush()
	for _, f := range []*os.File{a.partsFile, a.keyframesFile, a.eventsFile} {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func writeRecords[T any](records []T, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

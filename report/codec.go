package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-mteval/metric"
)

// JSON encodes the report with two-space indentation.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes and validates a JSON report.
func ParseJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Struct converts the report to a protobuf Struct with the same field names
// as the JSON encoding.
func (r *Report) Struct() (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"runId":       r.RunID,
		"generatedAt": r.GeneratedAt.UTC().Format(time.RFC3339Nano),
		"testCount":   r.TestCount,
		"koToEn":      r.KoToEn.fields(),
		"enToKo":      r.EnToKo.fields(),
	})
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return st, nil
}

// FromStruct converts a protobuf Struct produced by Struct back to a report.
func FromStruct(st *structpb.Struct) (*Report, error) {
	f := st.GetFields()

	generatedAt, err := time.Parse(time.RFC3339Nano, f["generatedAt"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("%w: generatedAt: %w", ErrInvalidReport, err)
	}

	r := &Report{
		RunID:       f["runId"].GetStringValue(),
		GeneratedAt: generatedAt,
		TestCount:   int(f["testCount"].GetNumberValue()),
		KoToEn:      scoresFromStruct(f["koToEn"].GetStructValue()),
		EnToKo:      scoresFromStruct(f["enToKo"].GetStructValue()),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Proto encodes the report as a serialized protobuf Struct.
func (r *Report) Proto() ([]byte, error) {
	st, err := r.Struct()
	if err != nil {
		return nil, err
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}

// ParseProto decodes a report encoded by Proto.
func ParseProto(data []byte) (*Report, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	return FromStruct(&st)
}

// WriteFile writes the report, choosing the encoding by extension: .json for
// JSON, .pb or .binpb for protobuf. Parent directories are created.
func (r *Report) WriteFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = r.JSON()
	case ".pb", ".binpb":
		data, err = r.Proto()
	default:
		return fmt.Errorf("report: unsupported extension %q", ext)
	}
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

// ReadFile reads a report written by WriteFile.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(data)
	case ".pb", ".binpb":
		return ParseProto(data)
	default:
		return nil, fmt.Errorf("report: unsupported extension %q", ext)
	}
}

func (s Scores) fields() map[string]any {
	m := make(map[string]any, len(metric.Names))
	for _, name := range metric.Names {
		m[string(name)] = s.Get(name)
	}
	return m
}

func scoresFromStruct(st *structpb.Struct) Scores {
	var s Scores
	for _, name := range metric.Names {
		s.Set(name, st.GetFields()[string(name)].GetNumberValue())
	}
	return s
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

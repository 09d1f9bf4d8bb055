// Package model defines the plain data types exchanged between the
// stencil relaxation engine, its CLI, and its persistence/archival layers.
package model

import "fmt"

// RunType identifies which execution strategy produced a Result.
type RunType int

const (
	RunTypeSerial RunType = iota
	RunTypePool
	RunTypeDistributed
)

// String returns the run type's CLI name.
func (t RunType) String() string {
	switch t {
	case RunTypeSerial:
		return "serial"
	case RunTypePool:
		return "pool"
	case RunTypeDistributed:
		return "dist"
	default:
		return "unknown"
	}
}

// Code returns the numeric type code used in the CSV record.
func (t RunType) Code() int {
	return int(t)
}

// ParseRunType maps a CLI type argument (numeric or named) to a RunType.
func ParseRunType(s string) (RunType, error) {
	switch s {
	case "0", "serial":
		return RunTypeSerial, nil
	case "1", "pool":
		return RunTypePool, nil
	case "2", "dist", "distributed":
		return RunTypeDistributed, nil
	default:
		return 0, fmt.Errorf("unknown run type %q", s)
	}
}

// Result is one completed benchmark run's record: the fields of the CSV
// line `<loop_count>,<type>,<size>,<threads>,<precision>,<seconds>,<xor64_hex16>,<sum64_hex16>`.
type Result struct {
	LoopCount int64
	Type      RunType
	Size      int
	Threads   int
	Precision float64
	Seconds   float64
	XOR64     uint64
	SUM64     uint64
}

// CSVRow renders the result as one CSV line, matching the benchmark
// harness's field order exactly.
func (r Result) CSVRow() string {
	return fmt.Sprintf("%08d,%02d,%05d,%03d,%f,%f,%016x,%016x",
		r.LoopCount, r.Type.Code(), r.Size, r.Threads, r.Precision, r.Seconds, r.XOR64, r.SUM64)
}

// String implements fmt.Stringer with the same rendering as CSVRow.
func (r Result) String() string {
	return r.CSVRow()
}

// Package repository provides database abstraction for archived benchmark runs.
package repository

import (
	"time"

	"github.com/relaxmesh/stencil/pkg/model"
)

// BenchmarkRun represents the benchmark_runs table: one completed
// relaxctl run, persisted alongside its CSV record.
type BenchmarkRun struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	LoopCount  int64     `gorm:"column:loop_count"`
	RunType    int       `gorm:"column:run_type"`
	Size       int       `gorm:"column:size"`
	Threads    int       `gorm:"column:threads"`
	Precision  float64   `gorm:"column:precision"`
	Seconds    float64   `gorm:"column:seconds"`
	XOR64      uint64    `gorm:"column:xor64"`
	SUM64      uint64    `gorm:"column:sum64"`
	ArchiveURL string    `gorm:"column:archive_url;type:varchar(512)"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for BenchmarkRun.
func (BenchmarkRun) TableName() string {
	return "benchmark_runs"
}

// ToModel converts BenchmarkRun to model.Result.
func (b *BenchmarkRun) ToModel() model.Result {
	return model.Result{
		LoopCount: b.LoopCount,
		Type:      model.RunType(b.RunType),
		Size:      b.Size,
		Threads:   b.Threads,
		Precision: b.Precision,
		Seconds:   b.Seconds,
		XOR64:     b.XOR64,
		SUM64:     b.SUM64,
	}
}

// FromModel builds a BenchmarkRun row from a model.Result and the
// archive URL (if any) its compressed CSV record was uploaded to.
func FromModel(r model.Result, archiveURL string) BenchmarkRun {
	return BenchmarkRun{
		LoopCount:  r.LoopCount,
		RunType:    r.Type.Code(),
		Size:       r.Size,
		Threads:    r.Threads,
		Precision:  r.Precision,
		Seconds:    r.Seconds,
		XOR64:      r.XOR64,
		SUM64:      r.SUM64,
		ArchiveURL: archiveURL,
	}
}

package sweep

import (
	"testing"

	"github.com/relaxmesh/stencil/pkg/config"
	"github.com/relaxmesh/stencil/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatrix(t *testing.T) {
	cfg := config.BenchConfig{
		SweepSize:  256,
		MinThreads: 1,
		MaxThreads: 4,
		Precision:  0.0001,
		ChunkSize:  10,
	}

	jobs := BuildMatrix(cfg)

	require.Len(t, jobs, 4) // 1 serial + threads {1,2,4}
	assert.Equal(t, model.RunTypeSerial, jobs[0].Type)
	assert.Equal(t, 256, jobs[0].Size)

	for _, j := range jobs[1:] {
		assert.Equal(t, model.RunTypePool, j.Type)
		assert.Equal(t, 10, j.Chunk)
		assert.Equal(t, 256, j.Size)
	}
	assert.Equal(t, 1, jobs[1].Threads)
	assert.Equal(t, 2, jobs[2].Threads)
	assert.Equal(t, 4, jobs[3].Threads)
}

func TestBuildMatrix_SingleThreadRange(t *testing.T) {
	cfg := config.BenchConfig{SweepSize: 64, MinThreads: 1, MaxThreads: 1, Precision: 0.0001, ChunkSize: 5}

	jobs := BuildMatrix(cfg)

	require.Len(t, jobs, 2)
	assert.Equal(t, model.RunTypeSerial, jobs[0].Type)
	assert.Equal(t, model.RunTypePool, jobs[1].Type)
	assert.Equal(t, 1, jobs[1].Threads)
}

package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func midpointFloat32(low, high float32) float32 {
	return low + (high-low)/2
}

func midpointFloat64(low, high float64) float64 {
	return low + (high-low)/2
}

func TestSinglePrecisionOnlyDrawsFloat32(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const n = 50
	stream := NewMockStream(ctrl)
	stream.EXPECT().Float32(gomock.Any(), gomock.Any()).DoAndReturn(midpointFloat32).Times(2 * n)
	stream.EXPECT().Float64(gomock.Any(), gomock.Any()).Times(0)

	pool := &countingPool{stream: stream}
	samples := make([]float32, n)
	err := Metropolis(standardNormal[float32], samples, -2, 4, &Params{
		Pool:       pool,
		Dispatcher: SequentialDispatcher{},
	}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, int64(n), pool.acquired.Load())
	assert.Equal(t, int64(n), pool.released.Load())
	assert.Zero(t, pool.overlaps.Load())
	for _, eachSample := range samples {
		assert.GreaterOrEqual(t, eachSample, float32(-2))
		assert.LessOrEqual(t, eachSample, float32(4))
	}
}

func TestDoublePrecisionOnlyDrawsFloat64(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const n = 50
	stream := NewMockStream(ctrl)
	stream.EXPECT().Float64(gomock.Any(), gomock.Any()).DoAndReturn(midpointFloat64).Times(2 * n)
	stream.EXPECT().Float32(gomock.Any(), gomock.Any()).Times(0)

	pool := &countingPool{stream: stream}
	samples := make([]float64, n)
	err := Metropolis(standardNormal[float64], samples, -2, 4, &Params{
		Pool:       pool,
		Dispatcher: SequentialDispatcher{},
	}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, int64(n), pool.acquired.Load())
	assert.Equal(t, int64(n), pool.released.Load())
}

func TestLaneDrawOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// u is drawn from [0, 1) before the proposal is drawn from [a, b).
	stream := NewMockStream(ctrl)
	gomock.InOrder(
		stream.EXPECT().Float64(0.0, 1.0).Return(0.0),
		stream.EXPECT().Float64(-3.0, 5.0).Return(2.5),
	)
	pool := &countingPool{stream: stream}
	samples := make([]float64, 1)
	err := Metropolis(standardNormal[float64], samples, -3, 5, &Params{Pool: pool}, discardLogger())
	require.NoError(t, err)

	// u = 0 always accepts a proposal with non-zero density.
	assert.Equal(t, 2.5, samples[0])
}

func TestSequentialChainRejectsUnlikelyProposal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Starting at the midpoint 0, a proposal at 4.5 has a density ratio far
	// below u = 0.9 and is rejected; the chain stays at 0.
	stream := NewMockStream(ctrl)
	gomock.InOrder(
		stream.EXPECT().Float64(0.0, 1.0).Return(0.9),
		stream.EXPECT().Float64(-5.0, 5.0).Return(4.5),
		stream.EXPECT().Float64(0.0, 1.0).Return(0.1),
		stream.EXPECT().Float64(-5.0, 5.0).Return(-0.5),
	)
	pool := &countingPool{stream: stream}
	samples := make([]float64, 2)
	err := Metropolis(standardNormal[float64], samples, -5, 5, &Params{
		Pool: pool,
		Mode: ModeSequential,
	}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -0.5}, samples)
	assert.Equal(t, int64(1), pool.acquired.Load())
	assert.Equal(t, int64(1), pool.released.Load())
}

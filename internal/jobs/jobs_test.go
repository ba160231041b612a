package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/hotsax/internal/compression"
	"github.com/soltixdb/hotsax/internal/models"
)

func sampleJob() *Job {
	values := make([]float64, 500)
	for i := range values {
		values[i] = float64(i % 25)
	}
	return NewJob(models.DiscordRequest{Values: values, WindowSize: 20, Algorithm: "hotsax"}, "req-1")
}

func TestNewJob(t *testing.T) {
	a, b := sampleJob(), sampleJob()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "req-1", a.RequestID)
	assert.False(t, a.SubmittedAt.IsZero())
}

func TestCodec_JobRoundTrip(t *testing.T) {
	for _, algo := range []compression.Algorithm{compression.None, compression.Snappy, compression.LZ4, compression.Zstd} {
		t.Run(algo.String(), func(t *testing.T) {
			codec, err := NewCodec(algo)
			require.NoError(t, err)
			assert.Equal(t, algo, codec.Algorithm())

			job := sampleJob()
			data, err := codec.EncodeJob(job)
			require.NoError(t, err)
			assert.Equal(t, byte(algo), data[0])

			decoded, err := codec.DecodeJob(data)
			require.NoError(t, err)
			assert.Equal(t, job.ID, decoded.ID)
			assert.Equal(t, job.Request.Values, decoded.Request.Values)
			assert.Equal(t, job.Request.WindowSize, decoded.Request.WindowSize)
			assert.True(t, job.SubmittedAt.Equal(decoded.SubmittedAt))
		})
	}
}

func TestCodec_DecodesAnyProducerAlgorithm(t *testing.T) {
	producer, err := NewCodec(compression.Zstd)
	require.NoError(t, err)
	consumer, err := NewCodec(compression.Snappy)
	require.NoError(t, err)

	res := &Result{
		JobID:  "job-1",
		Status: StatusDone,
		Response: &models.DiscordResponse{
			Algorithm: "hotsax",
			Discords:  []models.DiscordView{{Rank: 1, Position: 20, End: 25, Distance: 17.5}},
		},
		CompletedAt: time.Now().UTC(),
	}
	data, err := producer.EncodeResult(res)
	require.NoError(t, err)

	decoded, err := consumer.DecodeResult(data)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, decoded.Status)
	require.NotNil(t, decoded.Response)
	assert.Equal(t, res.Response.Discords, decoded.Response.Discords)
}

func TestCodec_DecodeErrors(t *testing.T) {
	codec, err := NewCodec(compression.None)
	require.NoError(t, err)

	_, err = codec.DecodeJob(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = codec.DecodeJob([]byte{99, '{', '}'})
	assert.Error(t, err, "unknown algorithm header")

	_, err = codec.DecodeJob([]byte{0, 'x'})
	assert.Error(t, err, "invalid JSON")

	_, err = codec.DecodeJob([]byte{0, '{', '}'})
	assert.Error(t, err, "missing id")

	_, err = codec.DecodeResult([]byte{0, '{', '}'})
	assert.Error(t, err, "missing job id")
}

func TestNewCodec_Unsupported(t *testing.T) {
	_, err := NewCodec(compression.Algorithm(42))
	assert.Error(t, err)
}

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore(time.Hour)
	job := sampleJob()

	require.NoError(t, store.Add(job))
	assert.Error(t, store.Add(job), "duplicate add")

	entry, ok := store.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, StatusPending, entry.Status)

	store.Update(&Result{JobID: job.ID, Status: StatusRunning})
	entry, _ = store.Get(job.ID)
	assert.Equal(t, StatusRunning, entry.Status)

	store.Update(&Result{JobID: job.ID, Status: StatusDone, Response: &models.DiscordResponse{}})
	entry, _ = store.Get(job.ID)
	assert.Equal(t, StatusDone, entry.Status)
	require.NotNil(t, entry.Result)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_UpdateUnknownJob(t *testing.T) {
	store := NewStore(0)

	store.Update(&Result{JobID: "early", Status: StatusFailed, Error: &models.ErrorDetail{Code: "DETECTION_FAILED"}})

	entry, ok := store.Get("early")
	require.True(t, ok)
	assert.Equal(t, StatusFailed, entry.Status)
}

func TestStore_Evict(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	finished, pending := sampleJob(), sampleJob()
	require.NoError(t, store.Add(finished))
	require.NoError(t, store.Add(pending))
	store.Update(&Result{JobID: finished.ID, Status: StatusDone})

	now = now.Add(2 * time.Minute)

	_, ok := store.Get(finished.ID)
	assert.False(t, ok, "expired entries are hidden before eviction")

	assert.Equal(t, 1, store.Evict())
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get(pending.ID)
	assert.True(t, ok, "unfinished jobs never expire")
}

func TestStatus_Finished(t *testing.T) {
	assert.False(t, StatusPending.Finished())
	assert.False(t, StatusRunning.Finished())
	assert.True(t, StatusDone.Finished())
	assert.True(t, StatusFailed.Finished())
}

func TestStore_FinishedStatusIsSticky(t *testing.T) {
	store := NewStore(0)
	store.Update(&Result{JobID: "j", Status: StatusDone})
	store.Update(&Result{JobID: "j", Status: StatusRunning})

	entry, ok := store.Get("j")
	require.True(t, ok)
	assert.Equal(t, StatusDone, entry.Status)
}

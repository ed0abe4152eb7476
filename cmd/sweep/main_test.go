package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/blog/model"
)

type fakeSweeper struct {
	due       int64
	err       error
	gotNow    time.Time
	published bool
}

func (f *fakeSweeper) PublishScheduled(_ context.Context, now time.Time) (*model.SweepResult, error) {
	f.gotNow = now
	f.published = true
	if f.err != nil {
		return nil, f.err
	}
	return model.NewSweepResult(f.due), nil
}

func (f *fakeSweeper) CountScheduledDue(_ context.Context, now time.Time) (int64, error) {
	f.gotNow = now
	return f.due, f.err
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--now", "2024-01-01T12:00:00+02:00", "--dry-run"})
	require.NoError(t, err)
	assert.True(t, opts.dryRun)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), opts.now)

	opts, err = parseFlags(nil)
	require.NoError(t, err)
	assert.True(t, opts.now.IsZero())
	assert.False(t, opts.dryRun)

	_, err = parseFlags([]string{"--now", "yesterday"})
	assert.Error(t, err)
}

func TestRun_Publishes(t *testing.T) {
	svc := &fakeSweeper{due: 2}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), svc, &options{now: now}, &out))
	assert.True(t, svc.published)
	assert.Equal(t, now, svc.gotNow)

	var res model.SweepResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, *model.NewSweepResult(2), res)
}

func TestRun_DryRunDoesNotPublish(t *testing.T) {
	svc := &fakeSweeper{due: 5}
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), svc, &options{dryRun: true}, &out))
	assert.False(t, svc.published)
	assert.Contains(t, out.String(), `"dryRun": true`)
	assert.Contains(t, out.String(), `"publishedCount": 5`)
}

func TestRun_Failure(t *testing.T) {
	svc := &fakeSweeper{err: errors.New("db down")}
	var out bytes.Buffer

	err := run(context.Background(), svc, &options{}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), `"success": false`)
	assert.NotContains(t, out.String(), "db down")
}

package redisclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers GET and emulates the two cache scripts by hash.
type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, redis.NewScript(script).Hash(), keys, args...)
}

func (f *fakeRedis) EvalSha(_ context.Context, sha1 string, keys []string, args ...any) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}

	switch sha1 {
	case setIfVersionScript.Hash():
		current, ok := f.data[keys[1]]
		if !ok {
			current = "0"
		}
		if current != args[0].(string) {
			return redis.NewCmdResult(int64(0), nil)
		}
		f.data[keys[0]] = args[1].(string)
		ms, _ := strconv.ParseInt(args[2].(string), 10, 64)
		f.ttl[keys[0]] = time.Duration(ms) * time.Millisecond
		return redis.NewCmdResult(int64(1), nil)
	case invalidateScript.Hash():
		n, _ := strconv.ParseInt(f.data[keys[1]], 10, 64)
		f.data[keys[1]] = strconv.FormatInt(n+1, 10)
		var deleted int64
		if _, ok := f.data[keys[0]]; ok {
			delete(f.data, keys[0])
			deleted = 1
		}
		return redis.NewCmdResult(deleted, nil)
	}
	return redis.NewCmdResult(nil, fmt.Errorf("NOSCRIPT unknown script %s", sha1))
}

func (f *fakeRedis) EvalRO(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeRedis) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, sha1, keys, args...)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(_ context.Context, script string) *redis.StringCmd {
	return redis.NewStringResult(redis.NewScript(script).Hash(), nil)
}

type entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewCache(fake)

	version, err := c.Version(ctx, "clinic:patient:1")
	require.NoError(t, err)
	assert.Zero(t, version)

	stored, err := c.SetIfVersion(ctx, "clinic:patient:1", version, entry{ID: 1, Name: "Ana"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, time.Minute, fake.ttl["clinic:patient:1"])

	var got entry
	ok, err := c.Get(ctx, "clinic:patient:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entry{ID: 1, Name: "Ana"}, got)

	require.NoError(t, c.Invalidate(ctx, "clinic:patient:1"))
	ok, err = c.Get(ctx, "clinic:patient:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	version, err = c.Version(ctx, "clinic:patient:1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestCacheMissIsNotAnError(t *testing.T) {
	var got entry
	ok, err := NewCache(newFakeRedis()).Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheRefusesFillAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewCache(newFakeRedis())

	// A reader takes the version, then a writer invalidates before the
	// reader gets to store what it loaded.
	version, err := c.Version(ctx, "clinic:patient:7")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "clinic:patient:7"))

	stored, err := c.SetIfVersion(ctx, "clinic:patient:7", version, entry{ID: 7, Name: "stale"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	var got entry
	ok, err := c.Get(ctx, "clinic:patient:7", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheInvalidateUnknownKey(t *testing.T) {
	assert.NoError(t, NewCache(newFakeRedis()).Invalidate(context.Background(), "clinic:doctor:404"))
}

func TestCacheWrapsBackendErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	c := NewCache(fake)

	var got entry
	_, err := c.Get(ctx, "k", &got)
	assert.ErrorContains(t, err, "connection refused")

	_, err = c.Version(ctx, "k")
	assert.ErrorContains(t, err, "connection refused")

	_, err = c.SetIfVersion(ctx, "k", 0, entry{}, time.Second)
	assert.ErrorContains(t, err, "connection refused")

	assert.ErrorContains(t, c.Invalidate(ctx, "k"), "connection refused")
}

package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherFetch(t *testing.T) {
	provider := &fakeProvider{fragments: []Fragment{
		{Text: "hello", Start: 0, Duration: 1},
		{Text: "world", Start: 1, Duration: 1},
	}}
	f := NewFetcher(provider, nullLogger())

	text, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc123&t=42s")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, []string{"abc123"}, provider.calls)
}

func TestFetcherNoCaptions(t *testing.T) {
	f := NewFetcher(&fakeProvider{}, nullLogger())

	text, err := f.Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetcherErrors(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		provider := &fakeProvider{}
		_, err := NewFetcher(provider, nullLogger()).Fetch(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrFetch)
		assert.Empty(t, provider.calls)
	})

	t.Run("provider failure", func(t *testing.T) {
		cause := errors.New("video unavailable")
		provider := &fakeProvider{err: cause}
		_, err := NewFetcher(provider, nullLogger()).Fetch(context.Background(), "abc123")
		assert.ErrorIs(t, err, ErrFetch)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "abc123")
		assert.Len(t, provider.calls, 1)
	})
}

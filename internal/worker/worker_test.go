package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializerRunsStartOnce(t *testing.T) {
	startCalls := 0
	initializer := NewInitializer(func() error {
		startCalls++
		return nil
	})

	assert.False(t, initializer.Started())

	first, err := initializer.Initialize()
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, initializer.Started())

	first, err = initializer.Initialize()
	require.NoError(t, err)
	assert.False(t, first)

	assert.Equal(t, 1, startCalls)
}

func TestInitializerRetriesAfterFailure(t *testing.T) {
	startCalls := 0
	initializer := NewInitializer(func() error {
		startCalls++
		if startCalls == 1 {
			return assert.AnError
		}
		return nil
	})

	_, err := initializer.Initialize()
	require.Error(t, err)
	assert.False(t, initializer.Started())

	first, err := initializer.Initialize()
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 2, startCalls)
}

func TestInitializerConcurrentCalls(t *testing.T) {
	startCalls := 0
	initializer := NewInitializer(func() error {
		startCalls++
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = initializer.Initialize()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, startCalls)
}

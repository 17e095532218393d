package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Count(t *testing.T) {
	i, err := Parse("500")
	require.NoError(t, err)

	n, ok := i.AsCount()
	assert.True(t, ok)
	assert.Equal(t, uint64(500), n)
	assert.False(t, i.IsUnbounded())
	assert.Equal(t, "500 cycles", i.String())
}

func TestParse_Duration(t *testing.T) {
	i, err := Parse("90s")
	require.NoError(t, err)

	d, ok := i.AsDuration()
	assert.True(t, ok)
	assert.Equal(t, 90*time.Second, d)
	assert.False(t, i.IsUnbounded())
	assert.Equal(t, "1m30s", i.String())
}

func TestParse_Unbounded(t *testing.T) {
	i, err := Parse("unbounded")
	require.NoError(t, err)

	assert.True(t, i.IsUnbounded())
	_, isCount := i.AsCount()
	assert.False(t, isCount)
	_, isDuration := i.AsDuration()
	assert.False(t, isDuration)
	assert.Equal(t, "unbounded", i.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "ten", "-5", "5 minutes"} {
		_, err := Parse(s)
		assert.Error(t, err, "input %q", s)
	}
}

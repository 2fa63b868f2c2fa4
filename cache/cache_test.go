package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndValue(t *testing.T) {
	c := Init(time.Minute)

	c.Set("product:1", "camera")

	got, found := c.Value("product:1")
	require.True(t, found)
	assert.Equal(t, "camera", got)

	_, found = c.Value("product:2")
	assert.False(t, found)

	c.Delete("product:1")
	_, found = c.Value("product:1")
	assert.False(t, found)
}

func TestValueExpires(t *testing.T) {
	c := Get()

	c.Set("products:list:p1", "page one", 10*time.Millisecond)
	_, found := c.Value("products:list:p1")
	require.True(t, found)

	time.Sleep(20 * time.Millisecond)

	_, found = c.Value("products:list:p1")
	assert.False(t, found)
}

func TestDeleteByPrefix(t *testing.T) {
	c := Get()

	c.Set("products:list:p1", 1)
	c.Set("products:list:p2", 2)
	c.Set("products:top", 3)
	c.Set("product:abc", 4)

	c.DeleteByPrefix("products:")

	_, found := c.Value("products:list:p1")
	assert.False(t, found)
	_, found = c.Value("products:top")
	assert.False(t, found)

	_, found = c.Value("product:abc")
	assert.True(t, found, "other prefixes survive invalidation")
}

package contenthash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		data := []byte("deed document payload")
		assert.Equal(t, Sum(data), Sum(data))
	})

	t.Run("differs for different content", func(t *testing.T) {
		assert.NotEqual(t, Sum([]byte("deed A")), Sum([]byte("deed B")))
	})

	t.Run("is lowercase hex of 32 bytes", func(t *testing.T) {
		digest := Sum([]byte("anything"))
		assert.Len(t, digest, 64)
		assert.Equal(t, strings.ToLower(digest), digest)
	})

	t.Run("known vector", func(t *testing.T) {
		// sha256("") is a fixed constant.
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			Sum(nil))
	})
}

func TestVerify(t *testing.T) {
	data := []byte("survey plan rev 3")
	assert.True(t, Verify(data, Sum(data)))
	assert.False(t, Verify([]byte("survey plan rev 4"), Sum(data)))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign8(t *testing.T) {
	for n := 0; n < 1024; n++ {
		a := Align8(n)
		assert.Equal(t, 0, a%8, "n=%d", n)
		assert.GreaterOrEqual(t, a, n)
		assert.LessOrEqual(t, a, n+7)
	}

	assert.Equal(t, 0, Align8(0))
	assert.Equal(t, 8, Align8(1))
	assert.Equal(t, 32, Align8(30))
	assert.Equal(t, 32, Align8(32))
}

func TestUpdateCrc(t *testing.T) {
	data := []byte("hello cmdlog")

	var crc uint32
	crc = UpdateCrc(crc, data[:5])
	crc = UpdateCrc(crc, data[5:])
	assert.Equal(t, GenerateCrc(data), crc)
	assert.True(t, CheckCrc(crc, data))
	assert.False(t, CheckCrc(crc+1, data))
}

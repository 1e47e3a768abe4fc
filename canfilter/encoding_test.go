package canfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStd(t *testing.T) {
	assert.Equal(t, uint16(0x0100), sanitizeStd(CAN1, 0x0100))
	assert.Equal(t, uint16(0x0800|0x0100), sanitizeStd(CAN2, 0x0100))
	assert.Equal(t, uint16(0x0100), sanitizeStd(CAN1, 0xFF00|0x0100))
}

func TestSanitizeExt(t *testing.T) {
	assert.Equal(t, uint32(0x1000), sanitizeExt(CAN1, 0x1000))
	assert.Equal(t, uint32(0x20000000|0x1000), sanitizeExt(CAN2, 0x1000))
}

func TestPackUnpackStd(t *testing.T) {
	word := packStd(0x1234, 0x5678)
	msb, lsb := unpackStd(word)
	assert.Equal(t, uint16(0x1234), msb)
	assert.Equal(t, uint16(0x5678), lsb)
}

func TestPackUnpackGroup16(t *testing.T) {
	word := packGroup16(0x0100, 0x0200)
	start, end := unpackGroup16(word)
	assert.Equal(t, uint16(0x0100), start)
	assert.Equal(t, uint16(0x0200), end)
}

func TestCountsTotal(t *testing.T) {
	assert.Equal(t, 0, counts{}.total())
	assert.Equal(t, 1, counts{std: 1}.total())
	assert.Equal(t, 1, counts{std: 2}.total())
	assert.Equal(t, 2, counts{std: 3}.total())
	assert.Equal(t, 1, counts{stdGrp: 1}.total())
	assert.Equal(t, 1, counts{ext: 1}.total())
	assert.Equal(t, 2, counts{extGrp: 1}.total())
}

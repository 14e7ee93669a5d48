package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizerBounds(t *testing.T) {
	n := Normalizer{MaxVolume: 3}
	for _, score := range []float64{-100, -1, -0.01, 0, 0.004, 0.005, 0.01, 0.025, 0.1, 5, 1e9} {
		buy := n.Entrance(score)
		assert.GreaterOrEqual(t, buy, 0, "entrance(%v)", score)
		assert.LessOrEqual(t, buy, 3, "entrance(%v)", score)

		for _, price := range []float64{0.01, 1, 10, 1000} {
			sell := n.Exit(score, price)
			assert.GreaterOrEqual(t, sell, 0, "exit(%v, %v)", score, price)
			assert.LessOrEqual(t, sell, 3, "exit(%v, %v)", score, price)
		}
	}
}

func TestNormalizerEntrance(t *testing.T) {
	n := Normalizer{MaxVolume: 3}

	assert.Equal(t, 0, n.Entrance(-0.5))
	assert.Equal(t, 1, n.Entrance(0.01))
	assert.Equal(t, 2, n.Entrance(0.018))
	assert.Equal(t, 3, n.Entrance(0.5))
}

func TestNormalizerExitIsPriceAware(t *testing.T) {
	n := Normalizer{MaxVolume: 3}

	assert.Equal(t, 3, n.Exit(-1, 10))
	assert.Equal(t, 1, n.Exit(-1, 100))
	assert.Equal(t, 0, n.Exit(-1, 1000))
	assert.Equal(t, 0, n.Exit(0.5, 10), "rising score never sells")
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, roundHalfUp(2.5))
	assert.Equal(t, -2.0, roundHalfUp(-2.5))
	assert.Equal(t, -3.0, roundHalfUp(-2.6))
	assert.Equal(t, 0.0, roundHalfUp(0.49))
}

func TestNormalizerExitNonPositivePrice(t *testing.T) {
	n := Normalizer{MaxVolume: 3}

	assert.Equal(t, 0, n.Exit(-1, 0))
	assert.Equal(t, 0, n.Exit(-1, -5))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1.00, cfg.Business.PriceUpdateAmount)
	assert.Equal(t, "price-update-", cfg.Business.ChannelPrefix)
	assert.Equal(t, "order-events", cfg.Kafka.TopicOrder)
}

func TestLoadPriceUpdateAmount(t *testing.T) {
	t.Setenv("PRICE_UPDATE_AMOUNT", "2.50")

	cfg := Load()
	assert.Equal(t, 2.50, cfg.Business.PriceUpdateAmount)
}

func TestLoadInvalidPriceUpdateAmountFallsBack(t *testing.T) {
	cases := []string{"abc", "-1", "0"}

	for _, value := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PRICE_UPDATE_AMOUNT", value)

			cfg := Load()
			assert.Equal(t, 1.00, cfg.Business.PriceUpdateAmount)
		})
	}
}

package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivitytimer/internal/core/ticker"
)

func TestNewTickSourceFactory_BuildsStoppedTickers(t *testing.T) {
	factory := newTickSourceFactory(zerolog.Nop())

	for i := 0; i < 3; i++ {
		source := factory(func() {})
		require.IsType(t, &ticker.Ticker{}, source)
		assert.False(t, source.Running())
	}
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "hidden"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

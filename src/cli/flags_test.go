package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thought-machine/go-flags"
)

func TestDuration(t *testing.T) {
	opts := struct {
		D Duration `short:"d"`
	}{}
	extraArgs, err := flags.ParseArgs(&opts, []string{"-d=3h"})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(extraArgs))
	assert.EqualValues(t, 3*time.Hour, opts.D)
}

func TestURL(t *testing.T) {
	opts := struct {
		U URL `short:"u"`
	}{}
	extraArgs, err := flags.ParseArgs(&opts, []string{"-u=https://localhost:9091"})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(extraArgs))
	assert.EqualValues(t, "https://localhost:9091", opts.U)
}

func TestURLDefault(t *testing.T) {
	opts := struct {
		U URL `short:"u" default:"http://pushgateway:9091"`
	}{}
	_, err := flags.ParseArgs(&opts, nil)
	assert.NoError(t, err)
	assert.EqualValues(t, "http://pushgateway:9091", opts.U)
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString("-", []string{"a", "-"}))
	assert.False(t, ContainsString("-", []string{"a", "b"}))
	assert.False(t, ContainsString("-", nil))
}

func TestURLInvalid(t *testing.T) {
	opts := struct {
		U URL `short:"u"`
	}{}
	_, err := flags.ParseArgs(&opts, []string{"-u=http://[::1"})
	assert.Error(t, err)
}

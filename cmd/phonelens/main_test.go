package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phonelens/phonelens/internal/cli"
	"github.com/phonelens/phonelens/internal/number"
	"github.com/phonelens/phonelens/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "phonelens", root.Use)
	})
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no error", err: nil, want: cli.ExitOK},
		{name: "operational error", err: errors.New("boom"), want: cli.ExitError},
		{name: "usage error", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitUsage},
		{name: "invalid number", err: fmt.Errorf("parsing: %w", number.ErrInvalidNumber), want: cli.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

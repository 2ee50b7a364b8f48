package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMainExitCode runs main in a subprocess, passing the command line
// through PAYKIT_MAIN_ARGS.
func TestMainExitCode(t *testing.T) {
	if args, ok := os.LookupEnv("PAYKIT_MAIN_ARGS"); ok {
		os.Args = append([]string{"paykit"}, strings.Fields(args)...)
		main()
		return
	}

	tests := []struct {
		name     string
		args     string
		wantExit int
	}{
		{name: "help", args: "--help", wantExit: 0},
		{name: "decode", args: "decode --type Filter testdata/filter.json", wantExit: 0},
		{name: "invalid flag", args: "--invalid-flag", wantExit: 1},
		{name: "unknown type", args: "decode --type Nope testdata/filter.json", wantExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitCode$")
			cmd.Env = append(os.Environ(), "PAYKIT_MAIN_ARGS="+tt.args)

			err := cmd.Run()
			if tt.wantExit == 0 {
				assert.NoError(t, err)
				return
			}
			var exitErr *exec.ExitError
			require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
			assert.Equal(t, tt.wantExit, exitErr.ExitCode())
		})
	}
}

package main

import "testing"

func TestRunRejectsInvalidEnvironment(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "unknown environment",
			args: []string{"production"},
		},
		{
			name: "garbage argument",
			args: []string{"not-a-stage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(tt.args); code != exitFailure {
				t.Errorf("run(%v) = %d, want %d", tt.args, code, exitFailure)
			}
		})
	}
}

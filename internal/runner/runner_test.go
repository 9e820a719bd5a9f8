// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package runner

import (
	"errors"
	"io/fs"
	"os/exec"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "wrapped exec not found",
			err:  &exec.Error{Name: "node", Err: exec.ErrNotFound},
			want: true,
		},
		{
			name: "bare exec not found",
			err:  exec.ErrNotFound,
			want: true,
		},
		{
			name: "file does not exist",
			err:  fs.ErrNotExist,
			want: true,
		},
		{
			name: "permission denied",
			err:  &exec.Error{Name: "node", Err: fs.ErrPermission},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeExecutor answers LookPath from a set of installed binaries and Run
// from a set of succeeding command lines.
type fakeExecutor struct {
	installed map[string]bool
	succeeds  map[string]bool
	stderr    string
	pipe      func(args []string, stdin io.Reader, stdout io.Writer) error
	calls     []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) Run(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	line := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, line)
	if len(args) > 0 && args[0] == "run" && f.pipe != nil {
		return f.pipe(args, stdin, stdout)
	}
	if f.succeeds[line] {
		return nil
	}
	io.WriteString(stderr, f.stderr)
	return errors.New("exit status 1")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *fakeExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true},
				succeeds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &fakeExecutor{
				installed: map[string]bool{"podman": true},
				succeeds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker installed but daemon down",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true, "podman": true},
				succeeds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &fakeExecutor{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(context.Background(), tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		engine  func(executor) *engine
		command string
	}{
		{"docker", newDocker, "docker image inspect markitdown:latest"},
		{"podman", newPodman, "podman image exists markitdown:latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := &fakeExecutor{succeeds: map[string]bool{tt.command: true}}
			if err := tt.engine(x).ImageExists(context.Background(), "markitdown:latest"); err != nil {
				t.Errorf("ImageExists: %v", err)
			}

			x = &fakeExecutor{stderr: "Error: no such image\nmore detail"}
			err := tt.engine(x).ImageExists(context.Background(), "markitdown:latest")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "no such image") || strings.Contains(err.Error(), "more detail") {
				t.Errorf("error = %v, want first stderr line", err)
			}
		})
	}
}

func TestRunPipesAndIsolates(t *testing.T) {
	var gotArgs []string
	x := &fakeExecutor{pipe: func(args []string, stdin io.Reader, stdout io.Writer) error {
		gotArgs = args
		data, _ := io.ReadAll(stdin)
		_, err := stdout.Write(bytes.ToUpper(data))
		return err
	}}

	var out bytes.Buffer
	if err := newDocker(x).Run(context.Background(), "img", strings.NewReader("hello"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "HELLO" {
		t.Errorf("stdout = %q", out.String())
	}
	if got := strings.Join(gotArgs, " "); got != "run --rm -i --network none img" {
		t.Errorf("args = %q", got)
	}
}

func TestRunReportsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x := &fakeExecutor{pipe: func([]string, io.Reader, io.Writer) error {
		return errors.New("signal: killed")
	}}

	err := newPodman(x).Run(ctx, "img", strings.NewReader(""), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// Package cli implements the tasklist command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist-sync/internal/client"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitUserError    = 1
	ExitBackendError = 3
)

// Env is what a command runs against.
type Env struct {
	Session      *client.Session
	Logger       *zap.Logger
	PollInterval time.Duration
	Out          io.Writer
	ErrOut       io.Writer
}

// Command is one tasklist subcommand.
type Command interface {
	Name() string
	Synopsis() string
	Usage() string
	// Run executes the command with its positional arguments and returns
	// the exit code.
	Run(ctx context.Context, env *Env, args []string) int
}

// Registry holds commands by name.
type Registry struct {
	cmds map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{cmds: make(map[string]Command)}
	for _, c := range cmds {
		if _, exists := r.cmds[c.Name()]; exists {
			panic(fmt.Sprintf("command already registered: %s", c.Name()))
		}
		r.cmds[c.Name()] = c
	}
	return r
}

func (r *Registry) Find(name string) (Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns the commands sorted by name.
func (r *Registry) All() []Command {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = r.cmds[name]
	}
	return out
}

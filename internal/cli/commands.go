package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BuzzLyutic/tasklist-sync/internal/client"
	"github.com/BuzzLyutic/tasklist-sync/internal/poller"
	"github.com/BuzzLyutic/tasklist-sync/internal/render"
)

type listCmd struct{}

func (listCmd) Name() string     { return "list" }
func (listCmd) Synopsis() string { return "Show all tasks" }
func (listCmd) Usage() string    { return "tasklist list" }

func (listCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		return usageError(env, "list takes no arguments")
	}
	if err := env.Session.FetchTasks(ctx); err != nil {
		return backendError(env, err)
	}
	render.Tasks(env.Out, env.Session.Tasks())
	return ExitSuccess
}

type addCmd struct{}

func (addCmd) Name() string     { return "add" }
func (addCmd) Synopsis() string { return "Create a task and show the refreshed list" }
func (addCmd) Usage() string    { return "tasklist add <title...>" }

func (addCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) == 0 {
		return usageError(env, "title required")
	}

	env.Session.SetDraftTitle(strings.Join(args, " "))
	if err := env.Session.CreateTask(ctx); err != nil {
		return backendError(env, err)
	}
	render.Tasks(env.Out, env.Session.Tasks())
	return ExitSuccess
}

// refCmd covers the commands that act on one listed task.
type refCmd struct {
	name     string
	synopsis string
	apply    func(*client.Session, context.Context, client.Task) error
}

func (c refCmd) Name() string     { return c.name }
func (c refCmd) Synopsis() string { return c.synopsis }
func (c refCmd) Usage() string    { return "tasklist " + c.name + " <n>" }

func (c refCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) != 1 {
		return usageError(env, "task number required")
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return usageError(env, fmt.Sprintf("invalid task number: %s", args[0]))
	}

	// Numbers refer to the list as the server has it right now.
	if err := env.Session.FetchTasks(ctx); err != nil {
		return backendError(env, err)
	}
	tasks := env.Session.Tasks()
	if num > len(tasks) {
		return usageError(env, fmt.Sprintf("task number out of range: %d", num))
	}

	if err := c.apply(env.Session, ctx, tasks[num-1]); err != nil {
		return backendError(env, err)
	}
	render.Tasks(env.Out, env.Session.Tasks())
	return ExitSuccess
}

var (
	doneCmd = refCmd{name: "done", synopsis: "Mark task <n> complete", apply: (*client.Session).CompleteTask}
	rmCmd   = refCmd{name: "rm", synopsis: "Delete task <n>", apply: (*client.Session).DeleteTask}
)

type watchCmd struct{}

func (watchCmd) Name() string     { return "watch" }
func (watchCmd) Synopsis() string { return "Re-read and show the list periodically until interrupted" }
func (watchCmd) Usage() string    { return "tasklist watch" }

func (watchCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		return usageError(env, "watch takes no arguments")
	}

	p := poller.New(env.Session, env.Logger, env.PollInterval, func(tasks []client.Task) {
		fmt.Fprintln(env.Out, "------------")
		render.Tasks(env.Out, tasks)
	})
	p.Start(ctx)
	p.Wait()
	return ExitSuccess
}

type helpCmd struct {
	registry func() *Registry
}

func (helpCmd) Name() string     { return "help" }
func (helpCmd) Synopsis() string { return "Show this help" }
func (helpCmd) Usage() string    { return "tasklist help" }

func (c helpCmd) Run(_ context.Context, env *Env, _ []string) int {
	printHelp(env.Out, c.registry())
	return ExitSuccess
}

func usageError(env *Env, msg string) int {
	fmt.Fprintf(env.ErrOut, "error: %s\n", msg)
	return ExitUserError
}

func backendError(env *Env, err error) int {
	fmt.Fprintf(env.ErrOut, "error: %s\n", describe(err))
	return ExitBackendError
}

// describe turns client errors into one line for the terminal.
func describe(err error) string {
	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		if se.Body != "" {
			return fmt.Sprintf("server rejected %s (%d): %s", se.Op, se.Code, se.Body)
		}
		return fmt.Sprintf("server rejected %s (%d)", se.Op, se.Code)
	case errors.Is(err, client.ErrNetwork):
		return fmt.Sprintf("cannot reach server: %v", err)
	case errors.Is(err, client.ErrDecode):
		return fmt.Sprintf("malformed task list from server: %v", err)
	default:
		return err.Error()
	}
}

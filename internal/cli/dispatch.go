package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist-sync/internal/client"
	"github.com/BuzzLyutic/tasklist-sync/internal/config"
)

// Dispatcher parses global flags, builds the session and runs a command.
type Dispatcher struct {
	registry *Registry
	cfg      config.Config
	logger   *zap.Logger
}

func NewDispatcher(cfg config.Config, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{cfg: cfg, logger: logger}
	d.registry = NewRegistry(
		listCmd{},
		addCmd{},
		doneCmd,
		rmCmd,
		watchCmd{},
		helpCmd{registry: func() *Registry { return d.registry }},
	)
	return d
}

// Run returns the process exit code. With no command it lists tasks.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	baseURL := fs.String("url", d.cfg.TaskListURL, "")
	timeout := fs.Duration("timeout", d.cfg.ClientTimeout, "")
	interval := fs.Duration("interval", d.cfg.PollInterval, "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printHelp(out, d.registry)
			return ExitSuccess
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return ExitUserError
	}

	rest := fs.Args()
	name := "list"
	if len(rest) > 0 {
		name, rest = rest[0], rest[1:]
	}
	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return ExitUserError
	}
	if *interval <= 0 {
		fmt.Fprintf(errOut, "error: interval must be positive\n")
		return ExitUserError
	}

	session, err := client.New(client.Config{
		BaseURL:    *baseURL,
		HTTPClient: &http.Client{Timeout: *timeout},
		Logger:     d.logger,
		// the command reports failures itself
		OnError: func(op string, err error) {
			d.logger.Debug("request failed", zap.String("op", op), zap.Error(err))
		},
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return ExitUserError
	}

	env := &Env{
		Session:      session,
		Logger:       d.logger,
		PollInterval: *interval,
		Out:          out,
		ErrOut:       errOut,
	}
	return cmd.Run(ctx, env, rest)
}

func printHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "usage: tasklist [-url URL] [-timeout D] [-interval D] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range r.All() {
		fmt.Fprintf(w, "  %-8s %s\n", c.Name(), c.Synopsis())
		fmt.Fprintf(w, "  %-8s %s\n", "", strings.TrimSpace(c.Usage()))
	}
}

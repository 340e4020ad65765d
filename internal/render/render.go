// Package render formats task collections for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/BuzzLyutic/tasklist-sync/internal/client"
)

const Empty = "(no tasks)"

// Tasks writes one line per task: "{N:>4}  [x] {TITLE}". N is the 1-based
// position used by the done and rm commands.
func Tasks(w io.Writer, tasks []client.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, Empty)
		return
	}
	for i, task := range tasks {
		Task(w, i+1, task)
	}
}

func Task(w io.Writer, num int, task client.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeTitle(task.Title))
}

// normalizeTitle keeps each task on one line and gives blank titles a
// placeholder.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

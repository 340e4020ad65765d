package client

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Task is a task as the server sent it. Title and Completed are decoded for
// display; everything else, including the identity, stays opaque. A Task
// decoded from the list endpoint marshals back to exactly the bytes it was
// decoded from, so delete and complete requests carry the server's own
// representation.
type Task struct {
	ID        json.RawMessage
	Title     string
	Completed bool

	raw json.RawMessage
}

type taskFields struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed,omitempty"`
}

var errNotObject = errors.New("task is not a JSON object")

func (t *Task) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	var f taskFields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}

	t.ID = f.ID
	t.Title = f.Title
	t.Completed = f.Completed
	t.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	if len(t.raw) > 0 {
		return t.raw, nil
	}
	return json.Marshal(taskFields{ID: t.ID, Title: t.Title, Completed: t.Completed})
}

// IDString renders the identity for display. String ids lose their quotes.
func (t Task) IDString() string {
	var s string
	if err := json.Unmarshal(t.ID, &s); err == nil {
		return s
	}
	return string(t.ID)
}

package model

import "time"

// Task is the server-side record behind the task list.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// TaskRef identifies a task in delete/complete requests. Clients post the
// whole task back; only the id matters here.
type TaskRef struct {
	ID *int64 `json:"id"`
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Open      int `json:"open"`
}

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		create  string
		want    Endpoints
		wantErr bool
	}{
		{
			name: "root without slash",
			base: "http://localhost:8080",
			want: Endpoints{
				List:     "http://localhost:8080/",
				Create:   "http://localhost:8080/create",
				Delete:   "http://localhost:8080/delete",
				Complete: "http://localhost:8080/complete",
			},
		},
		{
			name: "sub path without slash",
			base: "https://example.com/todo",
			want: Endpoints{
				List:     "https://example.com/todo/",
				Create:   "https://example.com/todo/create",
				Delete:   "https://example.com/todo/delete",
				Complete: "https://example.com/todo/complete",
			},
		},
		{
			name:   "sub path with slash and custom create",
			base:   "https://example.com/todo/",
			create: "/new",
			want: Endpoints{
				List:     "https://example.com/todo/",
				Create:   "https://example.com/todo/new",
				Delete:   "https://example.com/todo/delete",
				Complete: "https://example.com/todo/complete",
			},
		},
		{
			name: "query stays on the list url only",
			base: "http://h/list?owner=me#top",
			want: Endpoints{
				List:     "http://h/list/?owner=me",
				Create:   "http://h/list/create",
				Delete:   "http://h/list/delete",
				Complete: "http://h/list/complete",
			},
		},
		{name: "missing scheme", base: "localhost:8080", wantErr: true},
		{name: "unsupported scheme", base: "ftp://h/", wantErr: true},
		{name: "missing host", base: "http:///x", wantErr: true},
		{name: "empty", base: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEndpoints(tt.base, tt.create, "", "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwns(t *testing.T) {
	tests := []struct {
		name   string
		record Owned
		actor  uint64
		want   bool
	}{
		{"session owner", &StudySession{ID: 1, UserID: 7}, 7, true},
		{"session other user", &StudySession{ID: 1, UserID: 7}, 8, false},
		{"application owner", &Application{ID: 2, UserID: 3}, 3, true},
		{"application other user", &Application{ID: 2, UserID: 3}, 4, false},
		{"nil record", nil, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Owns(tt.record, tt.actor))
		})
	}
}

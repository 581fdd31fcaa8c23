package main

import (
	"testing"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectory(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []competitiondomain.Participant
		wantErr bool
	}{
		{
			name: "bare array",
			in:   `[{"id":"u1","fullName":"Alice Smith","displayName":"Ally"},{"id":"u2","full_name":"Bob Jones"}]`,
			want: []competitiondomain.Participant{
				{ID: "u1", FullName: "Alice Smith", DisplayName: "Ally"},
				{ID: "u2", FullName: "Bob Jones"},
			},
		},
		{
			name: "wrapped and incomplete entries skipped",
			in:   `{"participants":[{"id":"u1"},{"fullName":"No Id"},{"userId":"u3","name":" Carol Young "},42]}`,
			want: []competitiondomain.Participant{{ID: "u3", FullName: "Carol Young"}},
		},
		{name: "invalid json", in: `[{`, wantErr: true},
		{name: "not a list", in: `{"participants":"nope"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDirectory([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

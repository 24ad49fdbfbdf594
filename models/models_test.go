package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1.2.0", "", "abc123")

	assert.Equal(t, "v1.2.0", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.Equal(t, "Build version: v1.2.0\nBuild date: N/A\nBuild commit: abc123", info.String())
}

func TestParseVote(t *testing.T) {
	tests := []struct {
		in      string
		want    Vote
		wantErr bool
	}{
		{in: "up", want: VoteUp},
		{in: " DOWN ", want: VoteDown},
		{in: "none", want: VoteNone},
		{in: "+", want: VoteUp},
		{in: "-", want: VoteDown},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVote(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVote)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVote_String(t *testing.T) {
	assert.Equal(t, "up", VoteUp.String())
	assert.Equal(t, "down", VoteDown.String())
	assert.Equal(t, "none", VoteNone.String())
	assert.Equal(t, "vote(9)", Vote(9).String())
	assert.False(t, Vote(3).Valid())
}

func TestUser_IsZero(t *testing.T) {
	assert.True(t, User{}.IsZero())
	assert.False(t, User{ID: 1}.IsZero())
}

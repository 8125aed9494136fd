package validation

import (
	"testing"

	"github.com/mmcdole/showlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	existing := []domain.Show{{Title: "X"}, {Title: "Dexter"}}
	adding := domain.FormState{}
	editing := domain.FormState{EditingTitle: domain.StringPtr("X")}

	tests := []struct {
		name      string
		state     domain.FormState
		candidate domain.Show
		want      []string
	}{
		{
			name:      "valid new show",
			state:     adding,
			candidate: domain.Show{Title: "Fargo", Rating: domain.IntPtr(3)},
			want:      nil,
		},
		{
			name:      "empty title",
			state:     adding,
			candidate: domain.Show{Title: ""},
			want:      []string{MsgBlankTitle},
		},
		{
			name:      "whitespace title",
			state:     adding,
			candidate: domain.Show{Title: " \t "},
			want:      []string{MsgBlankTitle},
		},
		{
			name:      "duplicate on add",
			state:     adding,
			candidate: domain.Show{Title: "X"},
			want:      []string{MsgDuplicateTitle},
		},
		{
			name:      "duplicate check is case sensitive",
			state:     adding,
			candidate: domain.Show{Title: "dexter"},
			want:      nil,
		},
		{
			name:      "editing skips uniqueness for same title",
			state:     editing,
			candidate: domain.Show{Title: "X"},
			want:      nil,
		},
		{
			name:      "editing skips uniqueness on rename collision",
			state:     editing,
			candidate: domain.Show{Title: "Dexter"},
			want:      nil,
		},
		{
			name:      "rating out of range",
			state:     adding,
			candidate: domain.Show{Title: "Fargo", Rating: domain.IntPtr(6)},
			want:      []string{MsgRatingRange},
		},
		{
			name:      "all rules collected",
			state:     adding,
			candidate: domain.Show{Title: "", Rating: domain.IntPtr(0)},
			want:      []string{MsgBlankTitle, MsgRatingRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(existing, tt.state, tt.candidate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_BlankAndDuplicateTogether(t *testing.T) {
	existing := []domain.Show{{Title: ""}}

	got := Validate(existing, domain.FormState{}, domain.Show{Title: ""})

	assert.Equal(t, []string{MsgBlankTitle, MsgDuplicateTitle}, got)
}

func TestValidateBackup(t *testing.T) {
	require.NoError(t, ValidateBackup(nil))
	require.NoError(t, ValidateBackup([]domain.Show{
		{Title: "A", Rating: domain.IntPtr(5)},
		{Title: "B"},
	}))

	err := ValidateBackup([]domain.Show{{Title: "A"}, {Title: "A"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgDuplicateTitle)

	err = ValidateBackup([]domain.Show{{Title: "   "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgBlankTitle)

	err = ValidateBackup([]domain.Show{{Title: "A", Rating: domain.IntPtr(9)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgRatingRange)
}

package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorksheet_ComputeTotalHours(t *testing.T) {
	tests := []struct {
		name      string
		responses []FormResponse
		expected  float64
	}{
		{
			name: "first hour or time labeled field wins",
			responses: []FormResponse{
				{FieldLabel: "Summary", Value: "99"},
				{FieldLabel: "Hours on project", Value: "6.5"},
				{FieldLabel: "Time in meetings", Value: "1.5"},
			},
			expected: 6.5,
		},
		{
			name: "non numeric candidates skipped",
			responses: []FormResponse{
				{FieldLabel: "Hours on project", Value: "about six"},
				{FieldLabel: "Overtime hours", Value: "2"},
			},
			expected: 2.0,
		},
		{
			name:      "no responses",
			responses: nil,
			expected:  0,
		},
		{
			name: "label match is case insensitive",
			responses: []FormResponse{
				{FieldLabel: "HOURS spent", Value: "3"},
			},
			expected: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeTotalHours(tt.responses), 0.001)
		})
	}
}

func TestWorksheet_StatusHelpers(t *testing.T) {
	draft := Worksheet{Status: StatusDraft}
	assert.True(t, draft.Editable())
	assert.False(t, draft.Rejectable())

	submitted := Worksheet{Status: StatusSubmitted}
	assert.False(t, submitted.Editable())
	assert.True(t, submitted.Rejectable())

	verified := Worksheet{Status: StatusTLVerified}
	assert.True(t, verified.Rejectable())

	approved := Worksheet{Status: StatusManagerApproved}
	assert.False(t, approved.Editable())
	assert.False(t, approved.Rejectable())

	rejected := Worksheet{Status: StatusRejected}
	assert.True(t, rejected.Editable())
	assert.False(t, rejected.Rejectable())
}

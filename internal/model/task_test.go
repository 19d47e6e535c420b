package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", DefaultPriority, false},
		{"high", PriorityHigh, false},
		{"HIGH", PriorityHigh, false},
		{"h", PriorityHigh, false},
		{"Medium", PriorityMedium, false},
		{"med", PriorityMedium, false},
		{"low", PriorityLow, false},
		{" low ", PriorityLow, false},
		{"urgent", "", true},
		{"hig", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, Priority("bogus").Rank(), PriorityLow.Rank())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-01-05", false},
		{"2024-02-29", false}, // leap year
		{"2023-02-29", true},  // not a leap year
		{"2024-02-30", true},
		{"2024-13-01", true},
		{"2024-1-5", true}, // must be zero padded
		{"05/01/2024", true},
		{"not a date", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))

	var zero Date
	b, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var fromNull Date
	require.NoError(t, json.Unmarshal([]byte("null"), &fromNull))
	assert.True(t, fromNull.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"2024-02-30"`), &back))
}

func TestDate_DaysUntil(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	assert.Equal(t, 5, NewDate(2024, time.January, 15).DaysUntil(today))
	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, -3, NewDate(2024, time.January, 7).DaysUntil(today))
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("buy milk"))
	assert.ErrorIs(t, ValidateText(""), ErrEmptyText)
	assert.ErrorIs(t, ValidateText(strings.Repeat("x", MaxTextLength+1)), ErrTextTooLong)
}

func TestTask_Validate(t *testing.T) {
	task := Task{Text: "write report", Priority: PriorityHigh}
	assert.NoError(t, task.Validate())

	task.Priority = "Urgent"
	err := task.Validate()
	assert.ErrorIs(t, err, ErrInvalidPriority)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "priority", verr.Field)
}

func TestTask_Overdue(t *testing.T) {
	today := NewDate(2024, time.March, 10)
	task := Task{Text: "t", Priority: PriorityMedium, Due: NewDate(2024, time.March, 9)}
	assert.True(t, task.Overdue(today))

	task.Completed = true
	assert.False(t, task.Overdue(today), "completed tasks are never overdue")

	task = Task{Text: "t", Priority: PriorityMedium}
	assert.False(t, task.Overdue(today), "no due date means not overdue")

	task.Due = today
	assert.False(t, task.Overdue(today), "due today is not overdue")
}

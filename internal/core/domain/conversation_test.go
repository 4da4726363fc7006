package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReportTrigger(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"report", true},
		{"I want to file a COMPLAINT", true},
		{"there's a dump near my house", true},
		{"the bin is overflowing", true},
		{"hello", false},
		{"what can you do?", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReportTrigger(tt.input))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Priority
	}{
		{name: "plain high", input: "high", want: PriorityHigh},
		{name: "plain low", input: "low", want: PriorityLow},
		{name: "embedded", input: "pretty high I'd say", want: PriorityHigh},
		{name: "earliest occurrence wins", input: "low, not high", want: PriorityLow},
		{name: "no keyword defaults to medium", input: "urgent!!", want: PriorityMedium},
		{name: "empty defaults to medium", input: "", want: PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPriority(tt.input))
		})
	}
}

func TestIsAffirmative(t *testing.T) {
	assert.True(t, IsAffirmative("yes"))
	assert.True(t, IsAffirmative("Y"))
	assert.True(t, IsAffirmative("yep, go ahead"))
	assert.False(t, IsAffirmative("no"))
	assert.False(t, IsAffirmative("cancel"))
	assert.False(t, IsAffirmative(""))
}

func TestIsSkip(t *testing.T) {
	assert.True(t, IsSkip("skip"))
	assert.True(t, IsSkip("SKIP"))
	assert.True(t, IsSkip(" skip "))
	assert.False(t, IsSkip("skip it"))
	assert.False(t, IsSkip("asha"))
}

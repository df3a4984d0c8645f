package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.LabelBatch
	}{
		{
			name: "Single line",
			raw:  "123456789012, Motor Gear, R12",
			want: models.LabelBatch{{Code: "123456789012", Name: "Motor Gear", Location: "R12"}},
		},
		{
			name: "Fields are trimmed",
			raw:  "   ABC-1 ,\tBrake   Unit  ,  R34   ",
			want: models.LabelBatch{{Code: "ABC-1", Name: "Brake   Unit", Location: "R34"}},
		},
		{
			name: "Multiple lines keep order",
			raw:  "123456789012, Motor Gear, R12\n987654321098, Brake Unit, R34",
			want: models.LabelBatch{
				{Code: "123456789012", Name: "Motor Gear", Location: "R12"},
				{Code: "987654321098", Name: "Brake Unit", Location: "R34"},
			},
		},
		{
			name: "Blank lines and CRLF are skipped",
			raw:  "\r\n1, A, B\r\n\r\n   \n2, C, D\r\n",
			want: models.LabelBatch{
				{Code: "1", Name: "A", Location: "B"},
				{Code: "2", Name: "C", Location: "D"},
			},
		},
		{
			name: "Duplicates are kept",
			raw:  "1, A, B\n1, A, B",
			want: models.LabelBatch{
				{Code: "1", Name: "A", Location: "B"},
				{Code: "1", Name: "A", Location: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantLine    int
		wantContent string
		wantErr     error
	}{
		{
			name:    "Empty input",
			raw:     "",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "Whitespace only",
			raw:     " \n\t \r\n",
			wantErr: ErrEmptyInput,
		},
		{
			name:        "Two fields",
			raw:         "111, OnlyTwoFields",
			wantLine:    1,
			wantContent: "111, OnlyTwoFields",
			wantErr:     errFieldCount,
		},
		{
			name:        "Four fields",
			raw:         "1, A, B, C",
			wantLine:    1,
			wantContent: "1, A, B, C",
			wantErr:     errFieldCount,
		},
		{
			name:        "Trailing comma",
			raw:         "1, A, B,",
			wantLine:    1,
			wantContent: "1, A, B,",
			wantErr:     errFieldCount,
		},
		{
			name:        "Empty middle field",
			raw:         "1, , B",
			wantLine:    1,
			wantContent: "1, , B",
			wantErr:     errEmptyField,
		},
		{
			name:        "Malformed second line rejects the whole message",
			raw:         "123456789012, Motor Gear, R12\n111, OnlyTwoFields",
			wantLine:    2,
			wantContent: "111, OnlyTwoFields",
			wantErr:     errFieldCount,
		},
		{
			name:        "Line number counts skipped blank lines",
			raw:         "1, A, B\n\n\nbad",
			wantLine:    4,
			wantContent: "bad",
			wantErr:     errFieldCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Nil(t, batch)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "expected *FormatError, got %T", err)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Equal(t, tt.wantContent, fe.Content)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParserMaxLabels(t *testing.T) {
	p := New(2)

	batch, err := p.Parse("1, A, B\n2, C, D")
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	batch, err = p.Parse("1, A, B\n2, C, D\n3, E, F")
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, ErrTooManyLabels)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.Line)
}

func TestParserZeroLimitIsUnbounded(t *testing.T) {
	raw := ""
	for i := 0; i < 100; i++ {
		raw += "1, A, B\n"
	}
	batch, err := New(0).Parse(raw)
	require.NoError(t, err)
	assert.Len(t, batch, 100)
}

func TestFormatErrorMessage(t *testing.T) {
	_, err := Parse("111, OnlyTwoFields")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), `"111, OnlyTwoFields"`)

	_, err = Parse("")
	require.Error(t, err)
	assert.Equal(t, "format error: empty input", err.Error())
}

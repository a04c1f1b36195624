package month_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/month"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    month.Month
		wantErr bool
	}{
		{name: "Valid", in: "2024-03", want: month.Month{Year: 2024, Month: time.March}},
		{name: "Trimmed", in: " 2023-12 ", want: month.Month{Year: 2023, Month: time.December}},
		{name: "Empty", in: "", wantErr: true},
		{name: "MonthOutOfRange", in: "2024-13", wantErr: true},
		{name: "FullDate", in: "2024-03-01", wantErr: true},
		{name: "Garbage", in: "march", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := month.Parse(tt.in)
			if tt.wantErr {
				assert.True(t, apperr.IsValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		key  string
		last int
	}{
		{key: "2024-02", last: 29},
		{key: "2023-02", last: 28},
		{key: "2024-04", last: 30},
		{key: "2024-12", last: 31},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, err := month.Parse(tt.key)
			require.NoError(t, err)

			assert.Equal(t, 1, m.First().Day())
			assert.Equal(t, tt.last, m.Last().Day())
			assert.Equal(t, m.Month, m.Last().Month())
		})
	}
}

func TestAddAndLabel(t *testing.T) {
	m := month.Month{Year: 2024, Month: time.January}

	prev := m.Add(-1)
	assert.Equal(t, "2023-12", prev.String())
	assert.Equal(t, "Dez", prev.ShortLabel())
	assert.Equal(t, "Fev", m.Add(1).ShortLabel())

	assert.True(t, m.Contains(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

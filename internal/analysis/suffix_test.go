package analysis

import (
	"testing"

	"github.com/nao1215/pwaudit/internal/model"
)

func TestTrailingDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd  string
		want model.TrailingDigits
	}{
		{pwd: "pass123", want: model.TrailingDigits{Single: true, Double: true, Triple: true}},
		{pwd: "pass1234", want: model.TrailingDigits{Single: true, Double: true, Triple: true}},
		{pwd: "pass12", want: model.TrailingDigits{Single: true, Double: true}},
		{pwd: "pass1", want: model.TrailingDigits{Single: true}},
		{pwd: "pass", want: model.TrailingDigits{}},
		{pwd: "12a", want: model.TrailingDigits{}},
		{pwd: "7", want: model.TrailingDigits{Single: true}},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()
			if got := TrailingDigits(tt.pwd); got != tt.want {
				t.Errorf("TrailingDigits(%q) = %+v, want %+v", tt.pwd, got, tt.want)
			}
		})
	}
}

func TestTrailingYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd    string
		want   string
		wantOK bool
	}{
		{pwd: "hunter2021", want: "2021", wantOK: true},
		{pwd: "hunter21", wantOK: false},
		{pwd: "1999", want: "1999", wantOK: true},
		{pwd: "Summer2099", want: "2099", wantOK: true},
		{pwd: "x1899", wantOK: false},
		{pwd: "x2100", wantOK: false},
		{pwd: "2020x", wantOK: false},
		{pwd: "x20a1", wantOK: false},
		{pwd: "202", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()

			got, ok := TrailingYear(tt.pwd)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TrailingYear(%q) = (%q, %v), want (%q, %v)", tt.pwd, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

package utils

import "testing"

func TestFormatRWF(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0 RWF"},
		{500, "500 RWF"},
		{1000, "1,000 RWF"},
		{35000, "35,000 RWF"},
		{1234567, "1,234,567 RWF"},
		{-11000, "-11,000 RWF"},
	}
	for _, tc := range cases {
		if got := FormatRWF(tc.amount); got != tc.want {
			t.Errorf("FormatRWF(%d): got %q, want %q", tc.amount, got, tc.want)
		}
	}
}

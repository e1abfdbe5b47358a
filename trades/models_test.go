package trades

import "testing"

func TestOutcomeForPnL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pAndL   string
		want    string
		wantErr bool
	}{
		{"100", OutcomeWin, false},
		{"0.01", OutcomeWin, false},
		{"-50", OutcomeLose, false},
		{"-0.01", OutcomeLose, false},
		{"0", OutcomeBreakEven, false},
		{"0.0", OutcomeBreakEven, false},
		{" 12.5 ", OutcomeWin, false},
		{"", "", true},
		{"abc", "", true},
		{"12,5", "", true},
	}
	for _, tc := range tests {
		got, err := OutcomeForPnL(tc.pAndL)
		if tc.wantErr {
			if err == nil {
				t.Errorf("OutcomeForPnL(%q): expected error, got %q", tc.pAndL, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("OutcomeForPnL(%q): unexpected error: %v", tc.pAndL, err)
			continue
		}
		if got != tc.want {
			t.Errorf("OutcomeForPnL(%q) = %q, want %q", tc.pAndL, got, tc.want)
		}
	}
}

func TestStringOrNumberUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`"1.25"`, "1.25", false},
		{`1.25`, "1.25", false},
		{`50`, "50", false},
		{`"EURUSD"`, "EURUSD", false},
		{`true`, "", true},
		{`{"a":1}`, "", true},
	}
	for _, tc := range tests {
		var s StringOrNumber
		err := s.UnmarshalJSON([]byte(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Errorf("UnmarshalJSON(%s): expected error, got %q", tc.raw, s)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalJSON(%s): unexpected error: %v", tc.raw, err)
			continue
		}
		if string(s) != tc.want {
			t.Errorf("UnmarshalJSON(%s) = %q, want %q", tc.raw, s, tc.want)
		}
	}
}

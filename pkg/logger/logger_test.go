package logger

import "testing"

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		value   string
		want    LogLevel
		wantErr bool
	}{
		{value: "debug", want: DEBUG},
		{value: " INFO ", want: INFO},
		{value: "Error", want: ERROR},
		{value: "verbose", want: INFO, wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseLogLevel(tc.value)
		if tc.wantErr && err == nil {
			t.Errorf("ParseLogLevel(%q): expected error", tc.value)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("ParseLogLevel(%q): unexpected error %v", tc.value, err)
		}
		if got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestEnabledFollowsLevel(t *testing.T) {
	original := currentLevel
	t.Cleanup(func() { currentLevel = original })

	SetLogLevel(ERROR)
	if Enabled(INFO) {
		t.Error("INFO should be disabled at ERROR level")
	}
	if !Enabled(ERROR) {
		t.Error("ERROR should be enabled at ERROR level")
	}

	SetLogLevel(DEBUG)
	if !Enabled(INFO) {
		t.Error("INFO should be enabled at DEBUG level")
	}
}

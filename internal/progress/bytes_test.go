package progress

import "testing"

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		input    int64
		expected string
	}{
		{0, "0.0B"},
		{512, "512.0B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1024 * 1024, "1.0MB"},
		{1024 * 1024 * 1024, "1.0GB"},
		{1024 * 1024 * 1024 * 1024, "1.0TB"},
	}

	for _, tc := range testCases {
		if got := FormatBytes(tc.input); got != tc.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestConvertToBytes(t *testing.T) {
	testCases := []struct {
		value    float64
		unit     string
		expected int64
	}{
		{1, "B", 1},
		{1, "KB", 1024},
		{1, "kb", 1024},
		{1.5, "MB", int64(1.5 * 1024 * 1024)},
		{2, "GB", 2 * 1024 * 1024 * 1024},
		{3, "unknown", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.unit, func(t *testing.T) {
			if got := ConvertToBytes(tc.value, tc.unit); got != tc.expected {
				t.Errorf("ConvertToBytes(%v, %q) = %d, want %d", tc.value, tc.unit, got, tc.expected)
			}
		})
	}
}

func TestParseByteString(t *testing.T) {
	if got, ok := ParseByteString("12.4", "MB"); !ok || got != ConvertToBytes(12.4, "MB") {
		t.Errorf("ParseByteString(12.4, MB) = (%d, %v), want (%d, true)", got, ok, ConvertToBytes(12.4, "MB"))
	}

	if _, ok := ParseByteString("not-a-number", "MB"); ok {
		t.Error("expected ParseByteString to fail on a non-numeric value")
	}
}

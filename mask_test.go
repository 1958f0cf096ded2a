package ivaltauth

import "testing"

func TestMaskMobileNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+919876543210", "****3210"},
		{"15551234567", "****4567"},
		{"1234", "****1234"},
		{"12", "****"},
		{"", "****"},
	}

	for _, tc := range cases {
		if got := MaskMobileNumber(tc.in); got != tc.want {
			t.Errorf("MaskMobileNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

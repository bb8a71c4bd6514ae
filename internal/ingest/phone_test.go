package ingest

import "testing"

func TestNormalizeWhatsApp(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"local mobile", "3232851699", "+573232851699"},
		{"already e164", "+573232851699", "+573232851699"},
		{"with spaces", "323 285 1699", "+573232851699"},
		{"empty", "", ""},
		{"too short passes through", "12345", "12345"},
		{"free text passes through", "sin numero", "sin numero"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWhatsApp(tc.input); got != tc.want {
				t.Fatalf("NormalizeWhatsApp(%q) = %q; want %q", tc.input, got, tc.want)
			}
		})
	}
}

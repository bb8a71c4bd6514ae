package ingest

import "testing"

func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		name  string
		input string
		lat   string
		lon   string
	}{
		{"dms pair", `4°31'17.8"N 75°41'20.5"W`, "4.521611", "-75.689028"},
		{"southern hemisphere", `12°2'36.0"S 77°1'42.0"W`, "-12.043333", "-77.028333"},
		{"eastern hemisphere", `41°24'12.2"N 2°10'26.5"E`, "41.403389", "2.174028"},
		{"short map url", "https://maps.app.goo.gl/xyz", "", ""},
		{"empty", "", "", ""},
		{"free text", "frente al parque", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon := ParseCoordinates(tc.input)
			if lat != tc.lat || lon != tc.lon {
				t.Fatalf("ParseCoordinates(%q) = (%q, %q); want (%q, %q)",
					tc.input, lat, lon, tc.lat, tc.lon)
			}
		})
	}
}

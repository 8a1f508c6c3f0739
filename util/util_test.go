package util

import (
	"math"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/opencivic/civic-api/util/values"
)

func TestParseCoordinate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"Valid Latitude", "28.6", 28.6, false},
		{"Valid Longitude", "77.2", 77.2, false},
		{"Negative", "-33.8688", -33.8688, false},
		{"Whitespace Padded", "  12.5 ", 12.5, false},
		{"Zero", "0", 0, false},
		{"Empty", "", 0, true},
		{"Blank", "   ", 0, true},
		{"Not A Number", "north", 0, true},
		{"Trailing Garbage", "28.6N", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCoordinate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseCoordinate(%q) expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCoordinate(%q) returned error %v", tc.input, err)
			}
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("ParseCoordinate(%q) = %v; want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestUploadFileName(t *testing.T) {
	rgx := regexp.MustCompile(`^\d+-[a-z0-9]+\.jpg$`)

	name := UploadFileName("pothole photo.jpg")
	if !rgx.MatchString(name) {
		t.Errorf("UploadFileName produced %q; want millis-slug.jpg shape", name)
	}

	other := UploadFileName("pothole photo.jpg")
	if name == other {
		t.Errorf("two generated names collided: %q", name)
	}

	if got := UploadFileName("scan.PNG"); !strings.HasSuffix(got, ".png") {
		t.Errorf("extension not lowercased: %q", got)
	}

	if got := UploadFileName("noextension"); strings.Contains(got, ".") {
		t.Errorf("expected no extension, got %q", got)
	}
}

func TestEncodeTrackRoundTrip(t *testing.T) {
	track := []Coordinate{
		{Lat: 28.6139, Lon: 77.209},
		{Lat: 28.6145, Lon: 77.2102},
		{Lat: 28.6152, Lon: 77.2118},
	}

	encoded := EncodeTrack(track)
	if encoded == "" {
		t.Fatal("EncodeTrack returned empty string")
	}

	decoded, err := DecodeTrack(encoded)
	if err != nil {
		t.Fatalf("DecodeTrack returned error %v", err)
	}
	if len(decoded) != len(track) {
		t.Fatalf("decoded %d points; want %d", len(decoded), len(track))
	}
	for i := range track {
		if math.Abs(decoded[i].Lat-track[i].Lat) > 1e-5 || math.Abs(decoded[i].Lon-track[i].Lon) > 1e-5 {
			t.Errorf("point %d = %+v; want %+v", i, decoded[i], track[i])
		}
	}
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		status   string
		expected int
	}{
		{values.Success, http.StatusOK},
		{values.Created, http.StatusCreated},
		{values.BadRequestBody, http.StatusBadRequest},
		{values.NotAllowed, http.StatusForbidden},
		{values.Conflict, http.StatusConflict},
		{values.NotFound, http.StatusNotFound},
		{values.NotAuthorised, http.StatusUnauthorized},
		{values.TokenExpired, http.StatusUnauthorized},
		{values.Error, http.StatusInternalServerError},
		{"anything-else", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			if got := StatusCode(tc.status); got != tc.expected {
				t.Errorf("StatusCode(%q) = %d; want %d", tc.status, got, tc.expected)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	if NotBlank("   ") {
		t.Error("NotBlank(whitespace) = true; want false")
	}
	if !NotBlank(" Pothole ") {
		t.Error("NotBlank(text) = false; want true")
	}
}

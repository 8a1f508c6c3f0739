package util

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	"github.com/twpayne/go-polyline"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ParseCoordinate parses a form value into a float64 coordinate.
// Blank values and unparseable strings are both rejected.
func ParseCoordinate(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("coordinate is empty")
	}
	coord, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", value, err)
	}
	return coord, nil
}

// UploadFileName builds a collision-resistant file name for an uploaded
// photo: unix millis plus a cuid slug, keeping the original extension.
func UploadFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), cuid.Slug(), ext)
}

// Coordinate represents a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// EncodeTrack encodes an ordered list of positions as a Google-format
// polyline string for compact transfer to the map client.
func EncodeTrack(coords []Coordinate) string {
	pairs := make([][]float64, len(coords))
	for i, c := range coords {
		pairs[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(pairs))
}

// DecodeTrack decodes a polyline string back into positions.
func DecodeTrack(encoded string) ([]Coordinate, error) {
	decoded, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline %w", err)
	}
	coords := make([]Coordinate, len(decoded))
	for i, pair := range decoded {
		coords[i] = Coordinate{Lat: pair[0], Lon: pair[1]}
	}
	return coords, nil
}

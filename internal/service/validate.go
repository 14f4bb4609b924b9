package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// South Africa's approximate bounding box; coordinates outside it are
// unusual for this platform but not rejected.
var southAfricaBounds = struct {
	minLat, maxLat, minLng, maxLng float64
}{-35.0, -22.0, 16.0, 33.0}

// ValidateLatLng rejects NaN and out-of-range coordinates before they
// reach the engine, where they would only produce meaningless output.
func ValidateLatLng(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinate is not a finite number")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

// InSouthAfrica reports whether the coordinate falls inside South Africa's
// approximate bounds.
func InSouthAfrica(lat, lng float64) bool {
	return lat >= southAfricaBounds.minLat && lat <= southAfricaBounds.maxLat &&
		lng >= southAfricaBounds.minLng && lng <= southAfricaBounds.maxLng
}

var projectNameStrip = regexp.MustCompile(`[^\w\s-]`)

// SanitizeProjectName strips characters that cause trouble in filenames
// and logs. An empty result falls back to the default project name.
func SanitizeProjectName(name string) string {
	cleaned := strings.TrimSpace(projectNameStrip.ReplaceAllString(name, ""))
	if cleaned == "" {
		return "Land Development Project"
	}
	return cleaned
}

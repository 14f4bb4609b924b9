package upstream

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// esriFeature is one feature from an identify or query response. The
// geometry shape (rings or paths) matches the Esri JSON wire format.
type esriFeature struct {
	Geometry   *boundary.Geometry `json:"geometry"`
	Attributes map[string]any     `json:"attributes"`
}

type identifyResponse struct {
	Results []esriFeature `json:"results"`
}

type queryResponse struct {
	Features []esriFeature `json:"features"`
}

// pointGeometry encodes the query coordinate as an Esri point, x=lng y=lat.
func pointGeometry(lat, lng float64) string {
	b, _ := json.Marshal(struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{X: lng, Y: lat})
	return string(b)
}

func identifyURL(src Source, layer Layer, lat, lng float64) string {
	e := src.Extent
	v := url.Values{}
	v.Set("geometry", pointGeometry(lat, lng))
	v.Set("geometryType", "esriGeometryPoint")
	v.Set("layers", fmt.Sprintf("visible:%d", layer.ID))
	v.Set("tolerance", "10")
	v.Set("mapExtent", fmt.Sprintf("%v,%v,%v,%v", lng-e, lat-e, lng+e, lat+e))
	v.Set("imageDisplay", "400,400,96")
	v.Set("returnGeometry", "true")
	v.Set("f", "json")
	return src.BaseURL + "/identify?" + v.Encode()
}

func queryURL(src Source, layer Layer, lat, lng float64) string {
	v := url.Values{}
	v.Set("geometry", pointGeometry(lat, lng))
	v.Set("geometryType", "esriGeometryPoint")
	v.Set("spatialRel", "esriSpatialRelIntersects")
	v.Set("distance", strconv.Itoa(layer.Distance))
	v.Set("units", "esriSRUnit_Meter")
	v.Set("outFields", layer.OutFields)
	v.Set("returnGeometry", "true")
	v.Set("f", "json")
	return fmt.Sprintf("%s/%d/query?%s", src.BaseURL, layer.ID, v.Encode())
}

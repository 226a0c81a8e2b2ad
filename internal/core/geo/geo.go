// Package geo は地図表示用の静的な座標データを提供します。
package geo

import (
	"math"
	"sort"
)

// CountryCoordinate は地名ごとの表示名・中心座標・初期ズームです。
type CountryCoordinate struct {
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DefaultZoom int     `json:"defaultZoom"`
}

var countryCoordinates = map[string]CountryCoordinate{
	"Canada":    {DisplayName: "Canadá", Latitude: 56.1304, Longitude: -106.3468, DefaultZoom: 4},
	"Toronto":   {DisplayName: "Toronto, Canadá", Latitude: 43.6629, Longitude: -79.3957, DefaultZoom: 13},
	"Vancouver": {DisplayName: "Vancouver, Canadá", Latitude: 49.2827, Longitude: -123.1207, DefaultZoom: 13},
	"Mexico":    {DisplayName: "México", Latitude: 23.6345, Longitude: -102.5528, DefaultZoom: 4},
	"Colombia":  {DisplayName: "Colombia", Latitude: 4.5709, Longitude: -74.2973, DefaultZoom: 4},
	"USA":       {DisplayName: "Estados Unidos", Latitude: 37.0902, Longitude: -95.7129, DefaultZoom: 4},
	"España":    {DisplayName: "España", Latitude: 40.4637, Longitude: -3.7492, DefaultZoom: 5},
	"Portugal":  {DisplayName: "Portugal", Latitude: 39.3999, Longitude: -8.2245, DefaultZoom: 6},
	"Italia":    {DisplayName: "Italia", Latitude: 41.8719, Longitude: 12.5674, DefaultZoom: 5},
}

// Lookup は正規名に対応する座標を返します。存在しない場合は ok=false です。
func Lookup(place string) (CountryCoordinate, bool) {
	c, ok := countryCoordinates[place]
	return c, ok
}

// Places は登録済みの正規名を昇順で返します。
func Places() []string {
	places := make([]string, 0, len(countryCoordinates))
	for name := range countryCoordinates {
		places = append(places, name)
	}
	sort.Strings(places)
	return places
}

// ValidCoordinates は緯度・経度が地球上の範囲に収まるかを返します。
func ValidCoordinates(latitude, longitude float64) bool {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return false
	}
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

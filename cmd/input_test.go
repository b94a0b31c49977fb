package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfield/coverage-cli/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPolygons_GeoJSONFeatureCollection(t *testing.T) {
	path := writeTemp(t, "area.geojson", `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[10.0, 50.0], [10.1, 50.0], [10.1, 50.1], [10.0, 50.1], [10.0, 50.0]]]
			}
		}]
	}`)

	polys, err := loadPolygons(path)
	require.NoError(t, err)
	require.Len(t, polys, 1)

	// Closing vertex dropped, [lng, lat] mapped to {Lat, Lng}.
	require.Len(t, polys[0], 4)
	assert.Equal(t, model.Coordinate{Lat: 50.0, Lng: 10.0}, polys[0][0])
	assert.Equal(t, model.Coordinate{Lat: 50.1, Lng: 10.0}, polys[0][3])
}

func TestLoadPolygons_GeoJSONBareGeometry(t *testing.T) {
	path := writeTemp(t, "area.json", `{
		"type": "Polygon",
		"coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]
	}`)

	polys, err := loadPolygons(path)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	assert.Len(t, polys[0], 4)
}

func TestLoadPolygons_GeoJSONMultiPolygon(t *testing.T) {
	path := writeTemp(t, "areas.geojson", `{
		"type": "MultiPolygon",
		"coordinates": [
			[[[0, 0], [1, 0], [1, 1], [0, 0]]],
			[[[5, 5], [6, 5], [6, 6], [5, 5]]]
		]
	}`)

	polys, err := loadPolygons(path)
	require.NoError(t, err)
	assert.Len(t, polys, 2)
}

func TestLoadPolygons_Errors(t *testing.T) {
	_, err := loadPolygons(writeTemp(t, "area.csv", "a,b"))
	assert.Error(t, err)

	_, err = loadPolygons(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)

	_, err = loadPolygons(writeTemp(t, "bad.geojson", "{not json"))
	assert.Error(t, err)

	// A point is not a polygon.
	_, err = loadPolygons(writeTemp(t, "pt.geojson", `{"type": "Point", "coordinates": [1, 2]}`))
	assert.Error(t, err)
}

func TestLoadTowers(t *testing.T) {
	path := writeTemp(t, "towers.yaml", `
towers:
  - position: {lat: 52.52, lng: 13.405}
    operator: alpha
    technology: LTE
    frequency_mhz: 1800
  - position: {lat: 52.53, lng: 13.41}
    operator: beta
    technology: something-odd
`)

	towers, err := loadTowers(path)
	require.NoError(t, err)
	require.Len(t, towers, 2)

	assert.Equal(t, "alpha", towers[0].Operator)
	assert.Equal(t, model.Tech4G, towers[0].Technology)
	require.NotNil(t, towers[0].FrequencyMHz)
	assert.Equal(t, 1800.0, *towers[0].FrequencyMHz)

	assert.Equal(t, model.TechUnknown, towers[1].Technology)
	assert.Nil(t, towers[1].FrequencyMHz)
}

func TestLoadTowers_RejectsBadPosition(t *testing.T) {
	path := writeTemp(t, "towers.yaml", `
towers:
  - position: {lat: 123.0, lng: 0.0}
    operator: alpha
`)
	_, err := loadTowers(path)
	assert.Error(t, err)
}

func TestLoadGaps(t *testing.T) {
	path := writeTemp(t, "gaps.yaml", `
gaps:
  - position: {lat: 40.0, lng: -3.0}
    area_km2: 0.25
  - position: {lat: 40.01, lng: -3.0}
    area_km2: 0.5
`)

	gaps, err := loadGaps(path)
	require.NoError(t, err)
	require.Len(t, gaps, 2)
	assert.Equal(t, 0.25, gaps[0].AreaKm2)
	assert.Equal(t, model.Coordinate{Lat: 40.01, Lng: -3.0}, gaps[1].Position)
}

func TestLoadGaps_RejectsBadPosition(t *testing.T) {
	path := writeTemp(t, "gaps.yaml", `
gaps:
  - position: {lat: 0, lng: 200}
    area_km2: 1
`)
	_, err := loadGaps(path)
	assert.Error(t, err)
}

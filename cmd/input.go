package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"

	"github.com/signalfield/coverage-cli/internal/model"
)

// loadPolygons reads analysis polygons from a GeoJSON (.geojson/.json) or
// ESRI shapefile (.shp) file. Each polygon is returned as its exterior ring;
// interior holes are not modeled.
func loadPolygons(path string) ([]model.Polygon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return loadGeoJSONPolygons(path)
	case ".shp":
		return loadShapefilePolygons(path)
	default:
		return nil, eris.Errorf("input: unsupported polygon format %q (want .geojson, .json, or .shp)", filepath.Ext(path))
	}
}

func loadGeoJSONPolygons(path string) ([]model.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, eris.Wrapf(err, "input: parse %s", path)
	}

	var geoms []geom.T
	switch probe.Type {
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, eris.Wrapf(err, "input: parse feature collection %s", path)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrapf(err, "input: parse feature %s", path)
		}
		geoms = append(geoms, f.Geometry)
	default:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, eris.Wrapf(err, "input: parse geometry %s", path)
		}
		geoms = append(geoms, g)
	}

	var polygons []model.Polygon
	for _, g := range geoms {
		switch t := g.(type) {
		case *geom.Polygon:
			if p := ringToPolygon(t.LinearRing(0).Coords()); p != nil {
				polygons = append(polygons, p)
			}
		case *geom.MultiPolygon:
			for i := 0; i < t.NumPolygons(); i++ {
				if p := ringToPolygon(t.Polygon(i).LinearRing(0).Coords()); p != nil {
					polygons = append(polygons, p)
				}
			}
		}
	}
	if len(polygons) == 0 {
		return nil, eris.Errorf("input: no polygon geometries in %s", path)
	}
	return polygons, nil
}

// ringToPolygon converts a GeoJSON ring ([lng, lat] order, explicitly closed)
// to a model.Polygon (implicitly closed).
func ringToPolygon(coords []geom.Coord) model.Polygon {
	var p model.Polygon
	for _, c := range coords {
		p = append(p, model.Coordinate{Lat: c[1], Lng: c[0]})
	}
	// Drop the closing duplicate vertex.
	if len(p) > 1 && p[0] == p[len(p)-1] {
		p = p[:len(p)-1]
	}
	if len(p) < 3 {
		return nil
	}
	return p
}

func loadShapefilePolygons(path string) ([]model.Polygon, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	var polygons []model.Polygon
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly.NumParts == 0 {
			continue
		}

		for i := int32(0); i < poly.NumParts; i++ {
			start := poly.Parts[i]
			end := int32(len(poly.Points))
			if i+1 < poly.NumParts {
				end = poly.Parts[i+1]
			}

			var p model.Polygon
			for j := start; j < end; j++ {
				p = append(p, model.Coordinate{Lat: poly.Points[j].Y, Lng: poly.Points[j].X})
			}
			if len(p) > 1 && p[0] == p[len(p)-1] {
				p = p[:len(p)-1]
			}
			if len(p) >= 3 {
				polygons = append(polygons, p)
			}
		}
	}
	if len(polygons) == 0 {
		return nil, eris.Errorf("input: no polygon records in %s", path)
	}
	return polygons, nil
}

// towerFile is the YAML tower inventory format.
type towerFile struct {
	Towers []model.Tower `yaml:"towers"`
}

// loadTowers reads a YAML tower inventory. Technology labels are normalized;
// unknown labels become "unknown" rather than failing.
func loadTowers(path string) ([]model.Tower, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}

	var tf towerFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, eris.Wrapf(err, "input: parse towers %s", path)
	}

	for i := range tf.Towers {
		tf.Towers[i].Technology = model.ParseTechnology(string(tf.Towers[i].Technology))
		if err := tf.Towers[i].Position.Validate(); err != nil {
			return nil, eris.Wrapf(err, "input: tower %d in %s", i, path)
		}
	}
	return tf.Towers, nil
}

// gapFile is the YAML gap-zone format for externally produced gaps.
type gapFile struct {
	Gaps []model.GapZone `yaml:"gaps"`
}

// loadGaps reads a YAML gap-zone list.
func loadGaps(path string) ([]model.GapZone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}

	var gf gapFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, eris.Wrapf(err, "input: parse gaps %s", path)
	}

	for i, g := range gf.Gaps {
		if err := g.Position.Validate(); err != nil {
			return nil, eris.Wrapf(err, "input: gap %d in %s", i, path)
		}
	}
	return gf.Gaps, nil
}

package tzcountry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s2"
	"github.com/tidwall/gjson"
)

// geoCellLevel is the S2 level zone locations are bucketed at.
//
// A zone's representative location is a single city, and neighbouring
// zones are often hundreds of kilometres apart. Level 4 cells are roughly
// 600km across, so the cell plus its neighbours usually holds a candidate;
// when it does not, nearest falls back to scanning every zone.
const geoCellLevel = 4

// blockRadius is a lower bound on the distance from any point of a level-4
// cell to the outside of its 3x3 neighbourhood (about 300km). A candidate
// closer than this cannot be beaten by a zone outside the block.
const blockRadius = 300.0 / 6371.0 // radians on the unit sphere

type zonePoint struct {
	zone string
	ll   s2.LatLng
}

// geoIndex is an S2 cell index over zone locations.
type geoIndex struct {
	points []zonePoint
	cells  map[s2.CellID][]int
}

// loadGeoIndex parses zonegeo.json ({"Zone/Name": [lat, long], ...}).
func loadGeoIndex(b []byte) (*geoIndex, error) {
	if !gjson.ValidBytes(b) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return nil, errors.New("expected a JSON object")
	}
	gi := &geoIndex{cells: make(map[s2.CellID][]int)}
	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		pair := value.Array()
		if len(pair) != 2 {
			err = fmt.Errorf("zone %s: want [lat, long], got %s", key.String(), value.Raw)
			return false
		}
		ll := s2.LatLngFromDegrees(pair[0].Float(), pair[1].Float())
		if !ll.IsValid() {
			err = fmt.Errorf("zone %s: coordinates out of range", key.String())
			return false
		}
		cell := s2.CellIDFromLatLng(ll).Parent(geoCellLevel)
		gi.cells[cell] = append(gi.cells[cell], len(gi.points))
		gi.points = append(gi.points, zonePoint{zone: key.String(), ll: ll})
		return true
	})
	if err != nil {
		return nil, err
	}
	return gi, nil
}

// cellAndNeighbors returns the given cell plus its edge and corner
// neighbours.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	cells = append(cells, edgeNeighbors[:]...)

	seen := make(map[s2.CellID]bool, 9)
	for _, c := range cells {
		seen[c] = true
	}
	for _, en := range edgeNeighbors {
		for _, corner := range en.EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}

type geoCandidate struct {
	zone string
	dist float64
}

func (gi *geoIndex) nearest(lat, lng float64) (string, bool) {
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsInf(lat, 0) || math.IsInf(lng, 0) || len(gi.points) == 0 {
		return "", false
	}
	query := s2.LatLngFromDegrees(lat, lng).Normalized()
	queryCell := s2.CellIDFromLatLng(query).Parent(geoCellLevel)

	var candidates []geoCandidate
	for _, cell := range cellAndNeighbors(queryCell) {
		for _, i := range gi.cells[cell] {
			p := gi.points[i]
			candidates = append(candidates, geoCandidate{zone: p.zone, dist: float64(query.Distance(p.ll))})
		}
	}
	if len(candidates) == 0 || minDist(candidates) > blockRadius {
		candidates = candidates[:0]
		for _, p := range gi.points {
			candidates = append(candidates, geoCandidate{zone: p.zone, dist: float64(query.Distance(p.ll))})
		}
	}

	// Distance, then name, for a deterministic answer.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].zone < candidates[j].zone
	})
	return candidates[0].zone, true
}

func minDist(cs []geoCandidate) float64 {
	m := math.Inf(1)
	for _, c := range cs {
		m = math.Min(m, c.dist)
	}
	return m
}

package proj4_coordinate_converter

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/glog"
	"github.com/xeonx/geom"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/quadtree_indexer/internal/converters"
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
)

// proj.4 definitions of the supported EPSG codes
var epsgDatabase = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	3395: "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

type epsgProjection struct {
	proj    *proj.Proj
	latLong bool
}

// Converts coordinates between the EPSG reference systems of epsgDatabase.
// Projections are initialized on first use and kept until Cleanup.
type proj4CoordinateConverter struct {
	projections map[int]*epsgProjection
	sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*epsgProjection),
	}
}

// Returns true if the EPSG code can be used with this converter
func IsSupportedSrid(srid int) bool {
	_, ok := epsgDatabase[srid]
	return ok
}

func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	src, err := cc.projection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.projection(targetSrid)
	if err != nil {
		return coord, err
	}

	// proj.4 works in radians on lat/long systems
	points := []geom.Point{{X: coord.X, Y: coord.Y}}
	if src.latLong {
		points[0].X, points[0].Y = points[0].X*degToRad, points[0].Y*degToRad
	}

	if err := proj.TransformPoints(src.proj, dst.proj, points); err != nil {
		return coord, fmt.Errorf("transform EPSG:%d -> EPSG:%d: %w", sourceSrid, targetSrid, err)
	}

	x, y := points[0].X, points[0].Y
	if dst.latLong {
		x, y = x*radToDeg, y*radToDeg
	}

	return geometry.Coordinate{X: x, Y: y}, nil
}

// Releases all the initialized projections
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()

	for code, projection := range cc.projections {
		projection.proj.Close()
		delete(cc.projections, code)
	}
}

func (cc *proj4CoordinateConverter) projection(srid int) (*epsgProjection, error) {
	cc.Lock()
	defer cc.Unlock()

	if projection, ok := cc.projections[srid]; ok {
		return projection, nil
	}

	definition, ok := epsgDatabase[srid]
	if !ok {
		return nil, fmt.Errorf("unsupported EPSG code %d", srid)
	}

	p, err := proj.InitPlus(definition)
	if err != nil {
		return nil, fmt.Errorf("init EPSG:%d projection: %w", srid, err)
	}
	glog.V(1).Infof("initialized projection EPSG:%d %s", srid, p.GetDef())

	projection := &epsgProjection{
		proj:    p,
		latLong: p.IsLatLong(),
	}
	cc.projections[srid] = projection

	return projection, nil
}

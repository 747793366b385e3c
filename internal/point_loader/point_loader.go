package point_loader

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/quadtree_indexer/internal/converters"
	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree/region_tree"
	"github.com/ecopia-map/quadtree_indexer/tools"
)

var ErrEmptyField = stderrors.New("empty coordinate field")

var semicolonToComma = strings.NewReplacer(";", ",")

type LoaderOptions struct {
	Srid      int   // EPSG code of the input coordinates, 0 if already in the tree frame
	TreeSrid  int   // EPSG code of the tree frame
	Strict    bool  // abort on the first point outside the tree bound
	MaxPoints int64 // stop after this many loaded points, 0 for no limit
}

// Summary of a load
type LoadResult struct {
	Lines    int64
	Loaded   int64
	Rejected int64
}

func (r *LoadResult) add(other *LoadResult) {
	r.Lines += other.Lines
	r.Loaded += other.Loaded
	r.Rejected += other.Rejected
}

// Reads text files of points, one point per line, and adds them to a tree
type PointFileLoader struct {
	tree       quadtree.ITree
	converter  converters.CoordinateConverter
	translator converters.CoordinateTranslator
	opts       LoaderOptions
}

func NewPointFileLoader(
	tree quadtree.ITree,
	converter converters.CoordinateConverter,
	translator converters.CoordinateTranslator,
	opts LoaderOptions,
) *PointFileLoader {
	if converter == nil {
		converter = converters.NewIdentityConverter()
	}
	return &PointFileLoader{
		tree:       tree,
		converter:  converter,
		translator: translator,
		opts:       opts,
	}
}

// Loads every given file, stopping at the first failing one
func (l *PointFileLoader) LoadFiles(filePaths []string) (*LoadResult, error) {
	total := &LoadResult{}
	for i, filePath := range filePaths {
		tools.LogOutput(fmt.Sprintf("Processing file %d/%d", i+1, len(filePaths)))
		result, err := l.LoadFile(filePath)
		if result != nil {
			total.add(result)
		}
		if err != nil {
			return total, err
		}
		tools.LogOutput("> done processing", filepath.Base(filePath))
	}
	return total, nil
}

func (l *PointFileLoader) LoadFile(filePath string) (*LoadResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "open point file")
	}
	defer func() { _ = file.Close() }()

	return l.Load(file, filePath)
}

// Loads points from r. name is only used in error and log messages.
func (l *PointFileLoader) Load(r io.Reader, name string) (*LoadResult, error) {
	result := &LoadResult{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		result.Lines++

		coords, err := ParseLine(scanner.Text())
		if err != nil {
			return result, errors.Wrapf(err, "%s:%d", name, result.Lines)
		}
		if coords == nil {
			continue
		}

		point, err := l.toTreePoint(coords)
		if err != nil {
			return result, errors.Wrapf(err, "%s:%d", name, result.Lines)
		}

		if err := l.tree.AddPoint(point); err != nil {
			if !stderrors.Is(err, region_tree.ErrOutOfBounds) || l.opts.Strict {
				return result, errors.Wrapf(err, "%s:%d", name, result.Lines)
			}
			result.Rejected++
			glog.Warningf("%s:%d skipped: %v", name, result.Lines, err)
			continue
		}

		result.Loaded++
		glog.V(2).Infof("%s:%d loaded %s", name, result.Lines, point)

		if l.opts.MaxPoints > 0 && result.Loaded >= l.opts.MaxPoints {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return result, errors.Wrapf(err, "read %s", name)
	}

	return result, nil
}

func (l *PointFileLoader) toTreePoint(coords []float64) (data.Point, error) {
	point, err := data.NewPointFromCoordinates(coords...)
	if err != nil {
		return point, err
	}

	coord := geometry.Coordinate{X: point.X, Y: point.Y}
	if l.opts.Srid != 0 && l.opts.Srid != l.opts.TreeSrid {
		coord, err = l.converter.ConvertCoordinateSrid(l.opts.Srid, l.opts.TreeSrid, coord)
		if err != nil {
			return point, err
		}
	}
	if l.translator != nil {
		coord = l.translator.Translate(coord)
	}

	return data.NewPoint(coord.X, coord.Y), nil
}

// Parses the coordinates of a line. Coordinates are separated by commas, semicolons or blanks.
// Blanks around a comma or semicolon are ignored, but an empty field between two of them, or at
// either end of the line, is an error. Returns nil for blank lines and comments starting with '#'.
func ParseLine(line string) ([]float64, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	var fields []string
	for _, part := range strings.Split(semicolonToComma.Replace(line), ",") {
		partFields := strings.Fields(part)
		if len(partFields) == 0 {
			return nil, errors.Wrapf(ErrEmptyField, "line %q", line)
		}
		fields = append(fields, partFields...)
	}

	coords := make([]float64, 0, len(fields))
	for _, field := range fields {
		d, err := decimal.NewFromString(field)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid coordinate %q", field)
		}
		f, _ := d.Float64()
		coords = append(coords, f)
	}

	return coords, nil
}

package maploader

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
	"github.com/lintang-b-s/roadgraph/pkg/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
road map text format, one directed road segment per line:

	lat1 lon1 lat2 lon2 "Road Name" roadType

e.g.
	32.8660691 -117.217393 32.8660694 -117.2173932 "Gilman Drive" residential

both endpoints become vertices, the edge length is the great-circle distance in km.
blank lines and lines starting with '#' are ignored.
*/

// Load reads a road map file into graph. files ending with .bz2 are bzip2 decompressed.
func Load(mapFile string, graph *da.Graph, log *zap.Logger) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return errors.Wrapf(err, "can't open map file %s", mapFile)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(mapFile, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return errors.Wrapf(err, "can't open bzip2 stream of %s", mapFile)
		}
		defer bz.Close()
		r = bz
	}

	log.Info("Loading road map...", zap.String("mapFile", mapFile))
	err = LoadFromReader(r, graph, log)
	if err != nil {
		return errors.Wrapf(err, "can't load map file %s", mapFile)
	}
	return nil
}

// LoadFromReader reads road segments from r into graph. stops at the first malformed line.
func LoadFromReader(r io.Reader, graph *da.Graph, log *zap.Logger) error {
	br := bufio.NewReader(r)

	lineNumber := 0
	numSegments := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "can't read line %d", lineNumber+1)
		}
		eof := errors.Is(err, io.EOF)
		if eof && len(line) == 0 {
			break
		}
		lineNumber++

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			if eof {
				break
			}
			continue
		}

		segment, perr := parseSegment(line)
		if perr != nil {
			return errors.Wrapf(perr, "line %d", lineNumber)
		}

		graph.AddVertex(segment.from)
		graph.AddVertex(segment.to)
		length := geo.CalculateHaversineDistance(segment.from.GetX(), segment.from.GetY(),
			segment.to.GetX(), segment.to.GetY())
		if err := graph.AddEdge(segment.from, segment.to, segment.roadName, segment.roadType, length); err != nil {
			return errors.Wrapf(err, "line %d", lineNumber)
		}
		numSegments++

		if numSegments%100000 == 0 {
			log.Sugar().Infof("loading road segments: %d...", numSegments)
		}
		if eof {
			break
		}
	}

	log.Info("Road map loaded", zap.Int("segments", numSegments),
		zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))
	return nil
}

type roadSegment struct {
	from, to           da.Coordinate
	roadName, roadType string
}

var errMalformedLine = errors.New("malformed road segment")

func parseSegment(line string) (roadSegment, error) {
	openQuote := strings.IndexByte(line, '"')
	closeQuote := strings.LastIndexByte(line, '"')
	if openQuote < 0 || closeQuote <= openQuote {
		return roadSegment{}, errors.Wrap(errMalformedLine, "road name must be quoted")
	}

	coords := strings.Fields(line[:openQuote])
	if len(coords) != 4 {
		return roadSegment{}, errors.Wrapf(errMalformedLine, "want 4 coordinates, got %d", len(coords))
	}

	vals := make([]float64, 4)
	for i, c := range coords {
		v, err := util.StringToFloat64(c)
		if err != nil {
			return roadSegment{}, errors.Wrapf(errMalformedLine, "coordinate %q: %v", c, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return roadSegment{}, errors.Wrapf(errMalformedLine, "coordinate %q is not a finite number", c)
		}
		vals[i] = v
	}

	roadType := strings.TrimSpace(line[closeQuote+1:])
	if roadType == "" || len(strings.Fields(roadType)) != 1 {
		return roadSegment{}, errors.Wrap(errMalformedLine, "want exactly one road type after the road name")
	}

	return roadSegment{
		from:     da.NewCoordinate(vals[0], vals[1]),
		to:       da.NewCoordinate(vals[2], vals[3]),
		roadName: line[openQuote+1 : closeQuote],
		roadType: roadType,
	}, nil
}

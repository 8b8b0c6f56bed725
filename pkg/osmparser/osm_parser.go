package osmparser

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/roadgraph/pkg"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ScannerFactory opens a fresh scanner over the same osm data. Parse scans the data twice.
type ScannerFactory func(ctx context.Context) (osm.Scanner, error)

type OsmParser struct {
	wayNodeMap      map[osm.NodeID]struct{} // nodes referenced by an accepted way
	acceptedNodeMap map[osm.NodeID]da.Coordinate
	log             *zap.Logger
}

func NewOSMParser(log *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[osm.NodeID]struct{}),
		acceptedNodeMap: make(map[osm.NodeID]da.Coordinate),
		log:             log,
	}
}

// Parse reads an openstreetmap extract (.osm.pbf, or .osm xml) into graph.
// every node of an accepted highway way becomes a vertex, consecutive way nodes are joined by
// edges in the allowed directions. edge length is the great-circle distance in km.
func (p *OsmParser) Parse(mapFile string, graph *da.Graph) error {
	pbf := strings.HasSuffix(mapFile, ".pbf")

	var f *os.File
	factory := func(ctx context.Context) (osm.Scanner, error) {
		if f == nil {
			var err error
			f, err = os.Open(mapFile)
			if err != nil {
				return nil, errors.Wrapf(err, "can't open osm file %s", mapFile)
			}
		} else if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, "can't rewind osm file")
		}

		if pbf {
			return osmpbf.New(ctx, f, 1), nil
		}
		return osmxml.New(ctx, f), nil
	}
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	return p.ParseScanner(context.Background(), factory, graph)
}

func (p *OsmParser) ParseScanner(ctx context.Context, newScanner ScannerFactory, graph *da.Graph) error {
	scanner, err := newScanner(ctx)
	if err != nil {
		return err
	}

	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}

		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.log.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for _, node := range way.Nodes {
			p.wayNodeMap[node.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return errors.Wrap(err, "can't scan openstreetmap ways")
	}
	scanner.Close()

	scanner, err = newScanner(ctx)
	if err != nil {
		return err
	}
	defer scanner.Close()

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			{
				node := o.(*osm.Node)
				if _, ok := p.wayNodeMap[node.ID]; !ok {
					continue
				}
				if (countNodes+1)%500000 == 0 {
					p.log.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
				}
				countNodes++
				p.acceptedNodeMap[node.ID] = da.NewCoordinate(node.Lat, node.Lon)
			}
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 || !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%100000 == 0 {
					p.log.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				if err := p.processWay(way, graph); err != nil {
					return err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "can't scan openstreetmap nodes & ways")
	}

	p.log.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.log.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return nil
}

func (p *OsmParser) processWay(way *osm.Way, graph *da.Graph) error {
	forward, backward := wayDirections(way)
	roadName := way.Tags.Find("name")
	roadType := way.Tags.Find("highway")
	if roadType == "" {
		roadType = way.Tags.Find("junction")
	}

	for i := 0; i+1 < len(way.Nodes); i++ {
		from, okFrom := p.acceptedNodeMap[way.Nodes[i].ID]
		to, okTo := p.acceptedNodeMap[way.Nodes[i+1].ID]
		if !okFrom || !okTo {
			// node outside of the extract
			continue
		}
		if from == to {
			continue
		}

		graph.AddVertex(from)
		graph.AddVertex(to)
		length := geo.CalculateHaversineDistance(from.GetX(), from.GetY(), to.GetX(), to.GetY())

		if forward {
			if err := graph.AddEdge(from, to, roadName, roadType, length); err != nil {
				return errors.Wrapf(err, "way %d", way.ID)
			}
		}
		if backward {
			if err := graph.AddEdge(to, from, roadName, roadType, length); err != nil {
				return errors.Wrapf(err, "way %d", way.ID)
			}
		}
	}
	return nil
}

// wayDirections. which directions along the node list are drivable.
func wayDirections(way *osm.Way) (bool, bool) {
	oneway := way.Tags.Find("oneway")
	switch oneway {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	case "no", "false", "0":
		return true, true
	}

	junction := way.Tags.Find("junction")
	highway := way.Tags.Find("highway")
	if junction == "roundabout" || junction == "circular" || highway == "motorway" {
		return true, false
	}
	return true, true
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		return pkg.GetHighwayType(highway) != pkg.UNKNOWN
	} else if junction != "" {
		return true
	}
	return false
}

package datastructure

// Edge directed road segment. owned by the node of its from vertex.
type Edge struct {
	from     Coordinate
	to       Coordinate
	roadName string
	roadType string
	length   float64
}

func NewEdge(from, to Coordinate, roadName, roadType string, length float64) Edge {
	return Edge{
		from:     from,
		to:       to,
		roadName: roadName,
		roadType: roadType,
		length:   length,
	}
}

func (e Edge) GetFrom() Coordinate {
	return e.from
}

func (e Edge) GetTo() Coordinate {
	return e.to
}

func (e Edge) GetRoadName() string {
	return e.roadName
}

func (e Edge) GetRoadType() string {
	return e.roadType
}

func (e Edge) GetLength() float64 {
	return e.length
}

func (e Edge) IsSelfLoop() bool {
	return e.from == e.to
}

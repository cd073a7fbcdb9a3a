package app

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// /////////////////////////////////////////////////////////////////////////////
//
// TYPES
//
// /////////////////////////////////////////////////////////////////////////////

type d2TableParams struct {
	Key   string
	Value interface{}
}

// D2Encoder is satisfied by every node of the run graph.
type D2Encoder interface {
	ID() int64
	D2Key() string
	D2Encode(output io.StringWriter, log *slog.Logger) error
}

// /////////////////////////////////////////////////////////////////////////////
// pipelineNode
//
// One stage of a sampling run: the target density, the proposal, the
// kernel, the sample buffer. Rendered as a D2 sql_table whose rows are
// the stage parameters.
//
// /////////////////////////////////////////////////////////////////////////////
type pipelineNode struct {
	id     int64
	key    string
	name   string
	params []*d2TableParams
}

func (pn *pipelineNode) ID() int64 {
	return pn.id
}

func (pn *pipelineNode) D2Key() string {
	return pn.key
}

func (pn *pipelineNode) DOTID() string {
	return pn.key
}

func (pn *pipelineNode) D2Encode(output io.StringWriter, _ *slog.Logger) error {
	var writeErr error
	shape := "sql_table"
	if len(pn.params) <= 0 {
		shape = "cloud"
	}
	_, writeErr = output.WriteString(fmt.Sprintf("%s : %q {\n", pn.key, pn.name))
	if writeErr != nil {
		return writeErr
	}
	_, writeErr = output.WriteString(fmt.Sprintf("\tshape: %s\n", shape))
	if writeErr != nil {
		return writeErr
	}
	for _, eachParam := range pn.params {
		_, writeErr = output.WriteString(fmt.Sprintf("\t%s: %q\n", eachParam.Key, fmt.Sprintf("%v", eachParam.Value)))
		if writeErr != nil {
			return writeErr
		}
	}
	_, writeErr = output.WriteString("}\n")
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// runSummaryNode
//
// The root of the run graph, rendered as a markdown block.
//
// /////////////////////////////////////////////////////////////////////////////
type runSummaryNode struct {
	pipelineNode
}

func (rsn *runSummaryNode) D2Encode(output io.StringWriter, log *slog.Logger) error {
	var writeErr error
	log.Debug("Markdown encoding node", "title", rsn.name)
	_, writeErr = output.WriteString(fmt.Sprintf("%s : |md\n", rsn.key))
	if writeErr != nil {
		return writeErr
	}
	_, writeErr = output.WriteString(fmt.Sprintf("# %s\n", rsn.name))
	if writeErr != nil {
		return writeErr
	}
	for _, eachParam := range rsn.params {
		_, writeErr = output.WriteString(fmt.Sprintf("- **%s**: %v\n", eachParam.Key, eachParam.Value))
		if writeErr != nil {
			return writeErr
		}
	}
	_, writeErr = output.WriteString("|\n\n")
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// histogramNode
// /////////////////////////////////////////////////////////////////////////////
type histogramNode struct {
	pipelineNode
	imagePath string
}

func (hn *histogramNode) D2Encode(output io.StringWriter, _ *slog.Logger) error {
	_, writeErr := output.WriteString(fmt.Sprintf(`%s: %q {
	shape: image
	icon: %s
	width: 768
	height: 768
}
`,
		hn.key,
		hn.name,
		hn.imagePath))
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// D2Connection
// /////////////////////////////////////////////////////////////////////////////

type D2Connection struct {
	from      string
	to        string
	label     string
	highlight bool
}

// /////////////////////////////////////////////////////////////////////////////
// runGraph
//
// The directed graph of a sampling run. Edge labels and highlighting are
// kept beside the graph since simple.DirectedGraph edges carry neither.
//
// /////////////////////////////////////////////////////////////////////////////
type runGraph struct {
	*simple.DirectedGraph
	labels     map[[2]int64]string
	highlights map[[2]int64]bool
	nextID     int64
}

func newRunGraph() *runGraph {
	return &runGraph{
		DirectedGraph: simple.NewDirectedGraph(),
		labels:        make(map[[2]int64]string),
		highlights:    make(map[[2]int64]bool),
	}
}

func (rg *runGraph) newNode(key string, name string, params ...*d2TableParams) *pipelineNode {
	node := &pipelineNode{
		id:     rg.nextID,
		key:    key,
		name:   name,
		params: params,
	}
	rg.nextID++
	return node
}

func (rg *runGraph) connect(from graph.Node, to graph.Node, label string, highlight bool) {
	rg.SetEdge(rg.NewEdge(from, to))
	edgeKey := [2]int64{from.ID(), to.ID()}
	rg.labels[edgeKey] = label
	rg.highlights[edgeKey] = highlight
}

// sortedNodes returns the nodes in topological order, ties broken by ID.
func (rg *runGraph) sortedNodes() ([]graph.Node, error) {
	return topo.SortStabilized(rg, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) int {
			return cmp.Compare(a.ID(), b.ID())
		})
	})
}

// /////////////////////////////////////////////////////////////////////////////
// D2EncodingVisitor
//
// Serializes the run graph: every node in topological order, then the
// connections between them.
//
// /////////////////////////////////////////////////////////////////////////////
type D2EncodingVisitor struct {
	visited         map[int64]int
	log             *slog.Logger
	connectionsList []*D2Connection
}

func (d2enc *D2EncodingVisitor) encodeNode(output io.StringWriter, node D2Encoder) error {
	_, valExists := d2enc.visited[node.ID()]
	if valExists {
		return nil
	}
	d2enc.log.Debug("Encoding node", "type", fmt.Sprintf("%T", node), "id", node.ID(), "key", node.D2Key())
	d2enc.visited[node.ID()] = 1
	return node.D2Encode(output, d2enc.log)
}

func (d2enc *D2EncodingVisitor) Encode(rg *runGraph, output io.StringWriter, log *slog.Logger) error {
	d2enc.log = log
	d2enc.visited = make(map[int64]int, 0)
	d2enc.connectionsList = make([]*D2Connection, 0)

	sortedNodes, sortedNodesErr := rg.sortedNodes()
	if sortedNodesErr != nil {
		return sortedNodesErr
	}
	_, writeErr := output.WriteString(`
# Nodes
# ------------------------------------------------------------------------------

`)
	if writeErr != nil {
		return writeErr
	}
	for _, eachNode := range sortedNodes {
		encoder, encoderOk := eachNode.(D2Encoder)
		if !encoderOk {
			return fmt.Errorf("invalid node type: %T", eachNode)
		}
		encodeErr := d2enc.encodeNode(output, encoder)
		if encodeErr != nil {
			return encodeErr
		}
		successors := graph.NodesOf(rg.From(eachNode.ID()))
		slices.SortFunc(successors, func(a, b graph.Node) int {
			return cmp.Compare(a.ID(), b.ID())
		})
		for _, eachSuccessor := range successors {
			edgeKey := [2]int64{eachNode.ID(), eachSuccessor.ID()}
			d2enc.connectionsList = append(d2enc.connectionsList, &D2Connection{
				from:      encoder.D2Key(),
				to:        eachSuccessor.(D2Encoder).D2Key(),
				label:     rg.labels[edgeKey],
				highlight: rg.highlights[edgeKey],
			})
		}
	}
	_, writeErr = output.WriteString(`

# Connections
# ------------------------------------------------------------------------------
`)
	if writeErr != nil {
		return writeErr
	}
	for _, connection := range d2enc.connectionsList {
		labelSuffix := ""
		if connection.label != "" {
			labelSuffix = fmt.Sprintf(" : %q", connection.label)
		}
		styleSuffix := ""
		if connection.highlight {
			styleSuffix = ` {
	style: {
		stroke: crimson
		stroke-width: 4
		stroke-dash: 2
	}
}`
		}
		_, writeErr = output.WriteString(fmt.Sprintf("%s -> %s%s%s\n",
			connection.from,
			connection.to,
			labelSuffix,
			styleSuffix))
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}

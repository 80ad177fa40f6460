package drawer

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-fitpipe/internal/graphstore"
)

// DOTDrawer renders the step chain as a DOT digraph. Step nodes are coloured
// on a blue to red gradient following their position in the chain.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	store    *graphstore.Store
	steps    []string
	fileName string
}

// NewDOTDrawer creates a drawer that writes the DOT output to the given file.
func NewDOTDrawer(fileName string) *DOTDrawer {
	store := graphstore.New()

	return &DOTDrawer{
		fileName: fileName,
		store:    store,
		graph:    graph.NewWithStore[string, string](graph.StringHash, store, graph.Directed()),
	}
}

// AddStep adds a step node to the chain.
func (d *DOTDrawer) AddStep(stepName string) error {
	err := d.graph.AddVertex(stepName)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", stepName)
	}

	d.steps = append(d.steps, stepName)

	return nil
}

// AddLink adds a link between two step nodes.
func (d *DOTDrawer) AddLink(parentStepName, childStepName string) error {
	err := d.graph.AddEdge(parentStepName, childStepName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentStepName, childStepName)
	}

	return nil
}

// Label attaches a label to a step node.
func (d *DOTDrawer) Label(stepName, label string) error {
	err := d.store.UpdateVertex(stepName, func(props *graph.VertexProperties) {
		if props.Attributes == nil {
			props.Attributes = make(map[string]string)
		}
		props.Attributes["xlabel"] = label
	})
	if err != nil {
		return errors.Wrapf(err, "unable to label vertex %s", stepName)
	}

	return nil
}

const maxRGB = 240

// Draw colours the chain and writes the DOT file.
func (d *DOTDrawer) Draw() error {
	err := d.applyGradient()
	if err != nil {
		return err
	}

	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.fileName)
	}

	return nil
}

func (d *DOTDrawer) applyGradient() error {
	for idx, stepName := range d.steps {
		fraction := 0.0
		if len(d.steps) > 1 {
			fraction = float64(idx) / float64(len(d.steps)-1)
		}

		red := maxRGB * fraction
		blue := maxRGB - maxRGB*fraction

		stepColor, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.store.UpdateVertex(stepName, func(props *graph.VertexProperties) {
			if props.Attributes == nil {
				props.Attributes = make(map[string]string)
			}
			props.Attributes["color"] = stepColor.ToHEX().String()
		})
		if err != nil {
			return errors.Wrapf(err, "unable to colour vertex %s", stepName)
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(g graph.Graph[string, string], wrt io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

func generateDOT(gra graph.Graph[string, string]) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   make(map[string]string),
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceProperties.Attributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)

package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-teambalance/pkg/pipeline/measure"
)

// DOTDrawer renders the pipeline as a Graphviz DOT file.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	dotFileName string
}

// NewDOTDrawer creates a drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
	}
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw writes the DOT file.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.WriteTo(file)
	if err != nil {
		return errors.Wrapf(err, "unable to write dot file %s", d.dotFileName)
	}

	return nil
}

// WriteTo renders the graph to wrt.
func (d *DOTDrawer) WriteTo(wrt io.Writer) error {
	return dot(d.graph, wrt, GraphAttribute("rankdir", "LR"))
}

// SetTotalTime labels the step with the time elapsed since startTime.
func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stepName)
	}

	properties.Attributes["xlabel"] = round(time.Since(startTime)).String()

	return nil
}

const maxRGB = 240

// AddMeasure labels every step with its average duration and colours every edge from blue
// (fastest transport) to red (slowest transport).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	allChanElapsed := make(map[time.Duration]string)
	sortedAllChanElapsed := []time.Duration{}

	for _, step := range msr.AllMetrics() {
		for _, info := range step.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			if _, ok := allChanElapsed[info.Elapsed]; ok {
				continue
			}

			allChanElapsed[info.Elapsed] = ""
			sortedAllChanElapsed = append(sortedAllChanElapsed, info.Elapsed)
		}
	}

	sort.Slice(sortedAllChanElapsed, func(i, j int) bool {
		return sortedAllChanElapsed[i] > sortedAllChanElapsed[j]
	})

	if len(sortedAllChanElapsed) > 0 {
		maxValue := sortedAllChanElapsed[0]
		minValue := sortedAllChanElapsed[len(sortedAllChanElapsed)-1]

		for curr := range allChanElapsed {
			fraction := 1.0
			if maxValue > minValue {
				fraction = float64(curr-minValue) / float64(maxValue-minValue)
			}

			red := maxRGB * fraction
			blue := maxRGB - red

			rgb, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
			if err != nil {
				return errors.Wrap(err, "unable to get colour")
			}

			allChanElapsed[curr] = rgb.ToHEX().String()
		}
	}

	err := d.updateMetrics(msr, allChanElapsed)
	if err != nil {
		return errors.Wrap(err, "unable to update metrics")
	}

	return nil
}

func (d *DOTDrawer) updateMetrics(msr measure.Measure, allChanElapsed map[time.Duration]string) error {
	for name, step := range msr.AllMetrics() {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get %s vertex properties", name)
		}

		stepAvg := step.AVGDuration()
		if stepAvg != 0 {
			properties.Attributes["xlabel"] = fmt.Sprintf("avg %s (n=%d)", stepAvg, step.Count())
		}

		if step.GetTotalDuration() > 0 {
			properties.Attributes["xlabel"] += ", end: " + round(step.GetTotalDuration()).String()
		}

		for inputStep, info := range step.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			err := d.graph.UpdateEdge(inputStep, name,
				graph.EdgeAttribute("label", info.Elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", allChanElapsed[info.Elapsed]),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge %s -> %s", inputStep, name)
			}
		}
	}

	return nil
}

func round(d time.Duration) time.Duration {
	if d > time.Millisecond {
		return d.Round(time.Millisecond)
	}

	return d.Round(time.Microsecond)
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

func dot[K comparable, T any](g graph.Graph[K, T], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(g, options...)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option for the dot renderer.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// generateDOT emits vertices in sorted order so that the same graph always renders the same file.
func generateDOT[K comparable, T any](gra graph.Graph[K, T], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]K, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}

	sort.Slice(vertices, func(i, j int) bool {
		return fmt.Sprint(vertices[i]) < fmt.Sprint(vertices[j])
	})

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))

		for k, v := range sourceProperties.Attributes {
			if k == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, v)

				continue
			}

			sourceAttributes[k] = v
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]K, 0, len(adjacencyMap[vertex]))
		for adjacency := range adjacencyMap[vertex] {
			targets = append(targets, adjacency)
		}

		sort.Slice(targets, func(i, j int) bool {
			return fmt.Sprint(targets[i]) < fmt.Sprint(targets[j])
		})

		for _, adjacency := range targets {
			edge := adjacencyMap[vertex][adjacency]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)

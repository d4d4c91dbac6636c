// Package report renders the outcome of a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-teambalance/internal/balance"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Document struct {
	RunID           string  `yaml:"run_id" json:"run_id"`
	Variant         string  `yaml:"variant" json:"variant"`
	People          int     `yaml:"people" json:"people"`
	Candidates      int     `yaml:"candidates" json:"candidates"`
	AcceptedTeams   int     `yaml:"accepted_teams" json:"accepted_teams"`
	SearchSpace     string  `yaml:"search_space" json:"search_space"`
	ValidPartitions int64   `yaml:"valid_partitions" json:"valid_partitions"`
	Found           bool    `yaml:"found" json:"found"`
	ObjectiveScore  float64 `yaml:"objective_score" json:"objective_score"`
	Teams           []Team  `yaml:"teams" json:"teams"`
}

type Team struct {
	Members []string  `yaml:"members" json:"members"`
	Scores  []float64 `yaml:"scores" json:"scores"`
	Average float64   `yaml:"average" json:"average"`
}

// New builds the document of out.
func New(out *balance.Outcome) *Document {
	doc := &Document{
		RunID:           out.RunID,
		Variant:         out.Config.Variant,
		People:          out.Roster.Len(),
		Candidates:      out.Enumeration.Candidates,
		AcceptedTeams:   out.Enumeration.Accepted(),
		SearchSpace:     out.Result.SearchSpace.String(),
		ValidPartitions: out.Result.Valid,
		Found:           out.Result.Found,
		ObjectiveScore:  out.Result.ObjectiveScore,
		Teams:           []Team{},
	}

	for _, t := range out.Result.Teams() {
		doc.Teams = append(doc.Teams, Team{
			Members: t.Names(out.Roster),
			Scores:  t.Scores(out.Roster),
			Average: out.Mean(t),
		})
	}

	return doc
}

// Write renders doc to wrt. showAccepted prints the accepted team count first in the text format.
func Write(wrt io.Writer, doc *Document, format string, showAccepted bool) error {
	switch format {
	case FormatText, "":
		return writeText(wrt, doc, showAccepted)
	case FormatYAML:
		enc := yaml.NewEncoder(wrt)
		enc.SetIndent(2)

		err := enc.Encode(doc)
		if err != nil {
			return errors.Wrap(err, "unable to encode yaml report")
		}

		return errors.Wrap(enc.Close(), "unable to close yaml encoder")
	case FormatJSON:
		enc := json.NewEncoder(wrt)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(doc), "unable to encode json report")
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func writeText(wrt io.Writer, doc *Document, showAccepted bool) error {
	sb := &strings.Builder{}

	if showAccepted {
		fmt.Fprintln(sb, doc.AcceptedTeams)
	}

	fmt.Fprintf(sb, "minimise sd between team means: sd(%s)\n", formatFloat(doc.ObjectiveScore))

	if !doc.Found {
		fmt.Fprintln(sb, "no valid partition found")
	}

	for _, t := range doc.Teams {
		fmt.Fprintf(sb, "members %s\n", stringList(t.Members))
		fmt.Fprintf(sb, "scores %s\n", floatList(t.Scores))
		fmt.Fprintf(sb, "average %s\n", formatFloat(t.Average))
		fmt.Fprintln(sb)
	}

	_, err := io.WriteString(wrt, sb.String())
	if err != nil {
		return errors.Wrap(err, "unable to write text report")
	}

	return nil
}

func stringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote prefers single quotes and falls back to double quotes for names holding one.
func quote(v string) string {
	if strings.Contains(v, "'") && !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}

	v = strings.ReplaceAll(v, `\`, `\\`)

	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}

func floatList(values []float64) string {
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = formatFloat(v)
	}

	return "[" + strings.Join(formatted, ", ") + "]"
}

// formatFloat prints the shortest representation of v, always with a fractional part or an
// exponent so that whole numbers read as 7.0.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

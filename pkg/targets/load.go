package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML string

var defaultTable = mustLoad(defaultYAML)

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// Load parses a YAML table. Metric order follows the document.
func Load(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTable)
		}
		return nil, errors.Join(ErrInvalidTable, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of metrics", ErrInvalidTable)
	}

	root := doc.Content[0]
	targets := make([]Target, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		var entry targetYAML
		if err := root.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, name, err)
		}
		if entry.Excellent == nil || entry.Good == nil || entry.Fair == nil {
			return nil, fmt.Errorf("%w: %s: excellent, good and fair bands are required", ErrInvalidTable, name)
		}

		targets = append(targets, Target{
			Metric:    Metric(name),
			Label:     entry.Label,
			Unit:      entry.Unit,
			Excellent: *entry.Excellent,
			Good:      *entry.Good,
			Fair:      *entry.Fair,
		})
	}
	return NewTable(targets...)
}

// LoadFile reads a table from path. An empty path yields Default.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidTable, err)
	}
	defer f.Close()
	return Load(f)
}

type targetYAML struct {
	Label     string `yaml:"label,omitempty"`
	Unit      string `yaml:"unit,omitempty"`
	Excellent *Range `yaml:"excellent"`
	Good      *Range `yaml:"good"`
	Fair      *Range `yaml:"fair"`
}

// UnmarshalYAML accepts a [low, high] sequence.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: want [low, high], got %d values", ErrInvalidRange, len(pair))
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// MarshalYAML writes the range as a flow sequence.
func (r Range) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{r.Low, r.High} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: formatNumber(v)})
	}
	return node, nil
}

// WriteYAML encodes the table in the format Load reads.
func (t *Table) WriteYAML(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, target := range t.targets {
		var value yaml.Node
		if err := value.Encode(targetYAML{
			Label:     target.Label,
			Unit:      target.Unit,
			Excellent: &target.Excellent,
			Good:      &target.Good,
			Fair:      &target.Fair,
		}); err != nil {
			return err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(target.Metric)},
			&value,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func mustLoad(src string) *Table {
	t, err := Load(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("targets: built-in table: %v", err))
	}
	return t
}

// Package seed reads the pre-populated event set that the store treats as
// static data.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwarden/calmate/internal/calendar"
)

// Document is the keyed form of a seed file. A bare list of events is
// accepted as well.
type Document struct {
	Events []calendar.Event `json:"events" yaml:"events"`
}

// Load reads a seed file. Files ending in .json are decoded as JSON, anything
// else as YAML.
func Load(path string) ([]calendar.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var events []calendar.Event
	if strings.EqualFold(filepath.Ext(path), ".json") {
		events, err = DecodeJSON(data)
	} else {
		events, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return events, nil
}

func DecodeJSON(data []byte) ([]calendar.Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var events []calendar.Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

func DecodeYAML(data []byte) ([]calendar.Event, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var events []calendar.Event
		if err := node.Decode(&events); err != nil {
			return nil, err
		}
		return events, nil
	case yaml.MappingNode:
		var doc Document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Events, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of events or an events key", node.Line)
	}
}

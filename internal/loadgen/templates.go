package loadgen

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Templates is the pool the generator draws houses, owners and devices from.
type Templates struct {
	Names      []string
	Surnames   []string
	Devices    []string
	Channels   []int
	HouseTypes []HouseTemplate
}

// HouseTemplate describes one kind of home and the typical signal of each of its rooms.
type HouseTemplate struct {
	Type    string
	AreaMin int
	AreaMax int
	Mesh    bool
	Rooms   []RoomTemplate
}

type RoomTemplate struct {
	Name     string `yaml:"name"`
	BaseRSSI int    `yaml:"base_rssi"`
}

// rawTemplates is the on-disk YAML shape.
type rawTemplates struct {
	Names      []string `yaml:"names"`
	Surnames   []string `yaml:"surnames"`
	Devices    []string `yaml:"devices"`
	Channels   []int    `yaml:"channels"`
	HouseTypes []struct {
		Type  string         `yaml:"type"`
		Area  []int          `yaml:"area"` // [min, max]
		Mesh  bool           `yaml:"mesh"`
		Rooms []RoomTemplate `yaml:"rooms"`
	} `yaml:"house_types"`
}

// LoadTemplates reads templates from path, or the embedded defaults when path is empty.
func LoadTemplates(path string) (*Templates, error) {
	data := defaultTemplates
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read templates %q: %w", path, err)
		}
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes and validates a templates document.
func ParseTemplates(data []byte) (*Templates, error) {
	var raw rawTemplates
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if len(raw.Names) == 0 || len(raw.Surnames) == 0 {
		return nil, fmt.Errorf("templates: names and surnames are required")
	}
	if len(raw.Devices) == 0 {
		return nil, fmt.Errorf("templates: devices are required")
	}
	if len(raw.Channels) == 0 {
		return nil, fmt.Errorf("templates: channels are required")
	}
	if len(raw.HouseTypes) == 0 {
		return nil, fmt.Errorf("templates: at least one house type is required")
	}

	t := &Templates{
		Names:    raw.Names,
		Surnames: raw.Surnames,
		Devices:  raw.Devices,
		Channels: raw.Channels,
	}
	for i, h := range raw.HouseTypes {
		if strings.TrimSpace(h.Type) == "" {
			return nil, fmt.Errorf("templates: house type %d has no name", i)
		}
		if len(h.Area) != 2 || h.Area[0] <= 0 || h.Area[0] > h.Area[1] {
			return nil, fmt.Errorf("templates: house type %q needs area [min, max] with 0 < min <= max", h.Type)
		}
		if len(h.Rooms) == 0 {
			return nil, fmt.Errorf("templates: house type %q has no rooms", h.Type)
		}
		for _, r := range h.Rooms {
			if strings.TrimSpace(r.Name) == "" {
				return nil, fmt.Errorf("templates: house type %q has a room without a name", h.Type)
			}
		}
		t.HouseTypes = append(t.HouseTypes, HouseTemplate{
			Type:    h.Type,
			AreaMin: h.Area[0],
			AreaMax: h.Area[1],
			Mesh:    h.Mesh,
			Rooms:   h.Rooms,
		})
	}
	return t, nil
}

// Slug is the short lowercase tag used in generated house ids: "Villa Mesh" -> "villa".
func (h HouseTemplate) Slug() string {
	fields := strings.Fields(h.Type)
	if len(fields) == 0 {
		return "house"
	}
	return strings.ToLower(fields[0])
}

// RoomNames lists the rooms in template order.
func (h HouseTemplate) RoomNames() []string {
	names := make([]string, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		names = append(names, r.Name)
	}
	return names
}

package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
	"gopkg.in/yaml.v3"
)

// yamlLevel is the on-disk shape of a level file.
type yamlLevel struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Order     int        `yaml:"order"`
	Start     yamlPoint  `yaml:"start"`
	Goal      yamlPoint  `yaml:"goal"`
	Obstacles []yamlRect `yaml:"obstacles"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// parsedLevel carries the sort key alongside the level.
type parsedLevel struct {
	Level
	Order int
	Path  string
}

// ParseYAML decodes a single level document.
func ParseYAML(data []byte) (Level, error) {
	p, err := parseYAML(data)
	if err != nil {
		return Level{}, err
	}
	return p.Level, nil
}

func parseYAML(data []byte) (parsedLevel, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return parsedLevel{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return parsedLevel{}, errors.New("missing id")
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	lvl := Level{
		ID:          yl.ID,
		Name:        name,
		Obstacles:   make([]core.Rect, 0, len(yl.Obstacles)),
		Goal:        core.Pt(yl.Goal.X, yl.Goal.Y),
		PlayerStart: core.Pt(yl.Start.X, yl.Start.Y),
	}
	for _, o := range yl.Obstacles {
		lvl.Obstacles = append(lvl.Obstacles, core.NewRect(o.X, o.Y, o.W, o.H))
	}

	return parsedLevel{Level: lvl, Order: yl.Order}, nil
}

// MarshalYAML encodes a level in the file format read by ParseYAML.
func MarshalYAML(l Level, order int) ([]byte, error) {
	yl := yamlLevel{
		ID:    l.ID,
		Name:  l.Name,
		Order: order,
		Start: yamlPoint{X: l.PlayerStart.X, Y: l.PlayerStart.Y},
		Goal:  yamlPoint{X: l.Goal.X, Y: l.Goal.Y},
	}
	for _, o := range l.Obstacles {
		yl.Obstacles = append(yl.Obstacles, yamlRect{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}
	return yaml.Marshal(yl)
}

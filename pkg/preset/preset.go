package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/johncui/senses/pkg/model"
)

// Preset is a named environment ready to submit.
type Preset struct {
	Name        string            `yaml:"name" json:"name"`
	Environment model.Environment `yaml:"environment" json:"environment"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Builtin returns the stock environments, in menu order.
func Builtin() []Preset {
	return []Preset{
		{
			Name: "Peaceful Sunrise",
			Environment: model.Environment{
				"vision":  "Golden sunrise over calm ocean, pink clouds, seagulls flying",
				"hearing": "Gentle ocean waves, distant seagull calls, soft wind",
				"touch":   "Warm morning sun, cool ocean breeze, soft sand",
				"smell":   "Fresh ocean air, salty breeze, morning dew",
				"taste":   "Clean, fresh morning air",
			},
		},
		{
			Name: "Busy City Street",
			Environment: model.Environment{
				"vision":  "Tall skyscrapers, bright neon lights, busy traffic, people walking",
				"hearing": "Loud traffic, car horns, people talking, sirens",
				"touch":   "Hard concrete sidewalk, warm city air, vibration from traffic",
				"smell":   "Car exhaust, street food, city air",
				"taste":   "Polluted air, street food aromas",
			},
		},
		{
			Name: "Forest Adventure",
			Environment: model.Environment{
				"vision":  "Tall green trees, dappled sunlight, moss-covered rocks, wildlife",
				"hearing": "Rustling leaves, bird songs, flowing stream, animal sounds",
				"touch":   "Rough tree bark, soft moss, cool shade, fresh air",
				"smell":   "Pine trees, earth, fresh air, wildflowers",
				"taste":   "Clean forest air, natural freshness",
			},
		},
		{
			Name: "Cozy Home",
			Environment: model.Environment{
				"vision":  "Warm lighting, comfortable furniture, family photos, fireplace",
				"hearing": "Soft music, gentle conversation, crackling fire, quiet comfort",
				"touch":   "Soft cushions, warm temperature, comfortable fabrics",
				"smell":   "Home cooking, comfort, warmth, family",
				"taste":   "Warm tea, home-cooked meal, comfort",
			},
		},
		{
			Name: "Concert Hall",
			Environment: model.Environment{
				"vision":  "Bright stage lights, musicians, audience, elegant hall",
				"hearing": "Beautiful music, applause, instruments, acoustics",
				"touch":   "Vibrating bass, warm crowd, excitement, elegant seating",
				"smell":   "Perfume, excitement, venue air, anticipation",
				"taste":   "Excitement, anticipation, elegant atmosphere",
			},
		},
		{
			Name: "Pleasant Outdoor Garden",
			Environment: model.Environment{
				"vision":  "A beautiful garden with colorful flowers, green trees, and a clear blue sky",
				"hearing": "Gentle birds chirping and soft wind rustling through leaves",
				"touch":   "Warm sunlight on skin and a gentle breeze",
				"smell":   "Fresh flowers and clean air",
				"taste":   "Sweet taste of fresh air",
			},
		},
		{
			Name: "Kitchen",
			Environment: model.Environment{
				"vision":  "Clean kitchen with cooking utensils and ingredients",
				"hearing": "Sizzling sounds of cooking and soft music",
				"touch":   "Warm stove and smooth countertop",
				"smell":   "Delicious food cooking and fresh herbs",
				"taste":   "Sweet and savory flavors from cooking",
			},
		},
		{
			Name: "City Traffic",
			Environment: model.Environment{
				"vision":  "Tall buildings, cars, people walking, traffic lights",
				"hearing": "Loud traffic noise, car horns, and people talking",
				"touch":   "Hard concrete sidewalk under feet",
				"smell":   "Car exhaust and city air",
				"taste":   "Neutral taste of city air",
			},
		},
	}
}

// Parse decodes a YAML document of the form
//
//	presets:
//	  - name: Beach
//	    environment:
//	      vision: blue water
func Parse(data []byte) ([]Preset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal presets: %w", err)
	}
	for i, p := range f.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d: name is required", i+1)
		}
		if len(p.Environment) == 0 {
			return nil, fmt.Errorf("preset %q: environment is empty", p.Name)
		}
	}
	return f.Presets, nil
}

// LoadFile reads presets from a YAML file.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return Parse(data)
}

// Marshal renders presets in the format Parse accepts.
func Marshal(presets []Preset) ([]byte, error) {
	return yaml.Marshal(file{Presets: presets})
}

// Find returns the preset with the given 1-based index or exact name.
func Find(presets []Preset, key string) (Preset, bool) {
	for i, p := range presets {
		if p.Name == key || fmt.Sprint(i+1) == key {
			return p, true
		}
	}
	return Preset{}, false
}

package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/preset"
)

func TestBuiltin_UsesKnownSenses(t *testing.T) {
	presets := preset.Builtin()
	if len(presets) < 5 {
		t.Fatalf("Builtin() len = %d, want at least 5", len(presets))
	}
	for _, p := range presets {
		for name := range p.Environment {
			if _, err := model.ParseSense(name); err != nil {
				t.Errorf("preset %q uses unknown sense %q", p.Name, name)
			}
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
presets:
  - name: Beach
    environment:
      vision: blue water and a white boat
      smell: salty breeze
`)
	got, err := preset.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Beach" {
		t.Fatalf("Parse() = %+v", got)
	}
	if got[0].Environment["smell"] != "salty breeze" {
		t.Errorf("Environment[smell] = %q", got[0].Environment["smell"])
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "presets: [",
		"missing name": "presets:\n  - environment:\n      vision: sky\n",
		"empty env":    "presets:\n  - name: Void\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := preset.Parse([]byte(doc)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestLoadFile_RoundTripsMarshal(t *testing.T) {
	data, err := preset.Marshal(preset.Builtin()[:2])
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := preset.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got) != 2 || got[1].Name != "Busy City Street" {
		t.Errorf("LoadFile() = %+v", got)
	}
}

func TestFind(t *testing.T) {
	presets := preset.Builtin()
	if p, ok := preset.Find(presets, "3"); !ok || p.Name != "Forest Adventure" {
		t.Errorf("Find(3) = %q, %v", p.Name, ok)
	}
	if p, ok := preset.Find(presets, "Cozy Home"); !ok || p.Name != "Cozy Home" {
		t.Errorf("Find(Cozy Home) = %q, %v", p.Name, ok)
	}
	city, ok := preset.Find(presets, "City Traffic")
	if !ok {
		t.Fatal("Find(City Traffic) ok = false")
	}
	if got := city.Environment["hearing"]; got != "Loud traffic noise, car horns, and people talking" {
		t.Errorf("City Traffic hearing = %q", got)
	}
	if len(city.Environment) != len(model.Senses) {
		t.Errorf("City Traffic senses = %d, want %d", len(city.Environment), len(model.Senses))
	}
	if _, ok := preset.Find(presets, "99"); ok {
		t.Error("Find(99) ok = true")
	}
}

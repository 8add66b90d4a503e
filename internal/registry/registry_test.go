package registry

import (
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Description() string { return "stub " + g.id }

func TestRegisterKeepsOrder(t *testing.T) {
	ids := []string{"test_zeta", "test_alpha", "test_mid"}
	for _, id := range ids {
		id := id
		Register(id, func() Game { return &stubGame{id: id, title: "T " + id} })
	}

	var got []string
	for _, info := range List() {
		for _, id := range ids {
			if info.ID == id {
				got = append(got, info.ID)
				if info.Description != "stub "+id {
					t.Errorf("Description for %s = %q", id, info.Description)
				}
			}
		}
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("List order = %v, expected %v", got, ids)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("test_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}
	if Exists("test_missing") {
		t.Error("Exists of unknown id should be false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}

func TestCreateReturnsFreshInstance(t *testing.T) {
	Register("test_fresh", func() Game { return &stubGame{id: "test_fresh"} })

	a, err := Create("test_fresh")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Create("test_fresh")
	if a == b {
		t.Error("Create should return a new instance each call")
	}
}

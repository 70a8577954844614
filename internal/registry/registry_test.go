package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lanerush/internal/core"
)

type stubGame struct {
	id string
}

func (g *stubGame) ID() string            { return g.id }
func (g *stubGame) Title() string         { return "Stub " + g.id }
func (g *stubGame) Start(env Env) error   { return nil }
func (g *stubGame) Stop()                 {}
func (g *stubGame) Frame(ts float64)      {}
func (g *stubGame) KeyDown(key string)    {}
func (g *stubGame) KeyUp(key string)      {}
func (g *stubGame) Resize(w, h float64)   {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Error("Exists(stub-a) = false, expected true")
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("Create().ID() = %q, expected stub-b", g.ID())
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	if len(ids) < 2 || ids[0] != "stub-a" || ids[1] != "stub-b" {
		t.Errorf("List() ids = %v, expected sorted stub-a, stub-b", ids)
	}
	if List()[0].Title != "Stub stub-a" {
		t.Errorf("List()[0].Title = %q, expected Stub stub-a", List()[0].Title)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("missing")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(missing) = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Register() with a duplicate ID should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-model2ts/pkg/model"
)

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type team struct {
	Label string `json:"label"`
}

type audit struct {
	Actor string `json:"actor"`
}

func TestDiscover_RootAndNestedSubpackages(t *testing.T) {
	root := model.New("api")
	root.MustDefine("User", &user{})

	sub := root.Subpackage("teams")
	sub.MustDefine("Team", &team{})

	nested := sub.Subpackage("audit")
	nested.MustDefine("Audit", &audit{})

	defs, err := model.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	got := definitionNames(defs)
	want := []string{"User", "Team", "Audit"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_SkipsForeignMounts(t *testing.T) {
	root := model.New("pkg")
	root.MustDefine("User", &user{})

	qualifying := model.New("pkg.sub")
	qualifying.MustDefine("Team", &team{})
	root.Mount(qualifying)

	foreign := model.New("otherpkg")
	foreign.MustDefine("Audit", &audit{})
	root.Mount(foreign)

	defs, err := model.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	got := definitionNames(defs)
	want := []string{"User", "Team"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_SkipsPrivateNames(t *testing.T) {
	root := model.New("api")
	root.MustDefine("User", &user{})
	root.MustDefine("_Internal", &audit{})

	private := model.New("api._hidden")
	private.MustDefine("Team", &team{})
	root.Mount(private)

	defs, err := model.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	got := definitionNames(defs)
	want := []string{"User"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_DeduplicatesByIdentity(t *testing.T) {
	root := model.New("api")

	shared := model.New("api.shared")
	shared.MustDefine("User", &user{})

	// The same package reachable through two mount points must contribute its
	// definitions once.
	root.Mount(shared)
	left := root.Subpackage("left")
	left.Mount(shared)

	defs, err := model.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected one definition, got %d: %v", len(defs), definitionNames(defs))
	}
}

func TestDiscover_NameCollisionFails(t *testing.T) {
	root := model.New("api")
	root.MustDefine("User", &user{})

	sub := root.Subpackage("legacy")
	sub.MustDefine("User", &team{})

	_, err := model.Discover(root)
	if !errors.Is(err, model.ErrNameCollision) {
		t.Fatalf("expected name collision, got %v", err)
	}
}

func TestDiscover_NilRoot(t *testing.T) {
	if _, err := model.Discover(nil); err == nil {
		t.Fatal("expected error for nil root")
	}
}

func TestDiscover_CyclicMountsTerminate(t *testing.T) {
	root := model.New("api")
	root.MustDefine("User", &user{})

	sub := root.Subpackage("loop")
	sub.MustDefine("Team", &team{})
	// Mount the root back under its own subpackage; the visited set must stop
	// the walk.
	sub.Mount(root)

	defs, err := model.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	got := definitionNames(defs)
	want := []string{"User", "Team"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDefine_Validation(t *testing.T) {
	root := model.New("api")

	if _, err := root.Define("", &user{}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := root.Define("User", nil); err == nil {
		t.Fatal("expected error for nil prototype")
	}
	if _, err := root.Define("User", 42); err == nil {
		t.Fatal("expected error for non-struct prototype")
	}
}

func TestDefine_ExtraPolicy(t *testing.T) {
	root := model.New("api")

	def := root.MustDefine("User", &user{})
	if def.Extra() != model.ExtraIgnore {
		t.Fatalf("default policy = %q, want %q", def.Extra(), model.ExtraIgnore)
	}

	def = root.MustDefine("Team", &team{}, model.WithExtra(model.ExtraAllow))
	if def.Extra() != model.ExtraAllow {
		t.Fatalf("policy = %q, want %q", def.Extra(), model.ExtraAllow)
	}
}

func definitionNames(defs []*model.Definition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name())
	}
	return names
}

package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
)

func TestClassCreateAndListNames(t *testing.T) {
	c := newTestDB(t).Classes()

	for _, name := range []string{"5B", "5A", "6C"} {
		if err := c.Create(context.Background(), &model.Class{Name: name}); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	names, err := c.ListNames(context.Background())
	if err != nil {
		t.Fatalf("ListNames() error = %v", err)
	}

	want := []string{"5A", "5B", "6C"}
	if len(names) != len(want) {
		t.Fatalf("ListNames() returned %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestClassCreate_DuplicateName(t *testing.T) {
	c := newTestDB(t).Classes()

	if err := c.Create(context.Background(), &model.Class{Name: "5A"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := c.Create(context.Background(), &model.Class{Name: "5A"})
	if err == nil {
		t.Fatal("Create() should have failed for a duplicate class name")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestClassListNames_Empty(t *testing.T) {
	c := newTestDB(t).Classes()

	names, err := c.ListNames(context.Background())
	if err != nil {
		t.Fatalf("ListNames() error = %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("ListNames() = %v, want empty non-nil slice", names)
	}
}

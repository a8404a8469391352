package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/models"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, found, err := s.Get(ctx, "missing"); err != nil || found {
				t.Fatalf("Get(missing) = found %v, err %v; want not found", found, err)
			}

			if err := s.Set(ctx, "k", []byte("v1")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "k", []byte("v2")); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}

			got, found, err := s.Get(ctx, "k")
			if err != nil || !found {
				t.Fatalf("Get(k) = found %v, err %v", found, err)
			}
			if string(got) != "v2" {
				t.Errorf("Get(k) = %q, want %q", got, "v2")
			}
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	_ = m.Set(ctx, "k", buf)
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value = %q, want %q", got, "abc")
	}
	got[1] = 'y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value after mutating result = %q, want %q", again, "abc")
	}
}

func TestManualDefaults_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			d, err := LoadManualDefaults(ctx, s)
			if err != nil {
				t.Fatalf("LoadManualDefaults on empty store: %v", err)
			}
			if d != (models.ManualDefaults{}) {
				t.Errorf("LoadManualDefaults on empty store = %+v, want zero", d)
			}

			want := models.ManualDefaults{PossibleRole: "SRE", Tags: "go, k8s", Notes: "met at meetup"}
			if err := SaveManualDefaults(ctx, s, want); err != nil {
				t.Fatalf("SaveManualDefaults: %v", err)
			}
			got, err := LoadManualDefaults(ctx, s)
			if err != nil {
				t.Fatalf("LoadManualDefaults: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("manual defaults mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManualDefaults_StorageLayout(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := SaveManualDefaults(ctx, m, models.ManualDefaults{PossibleRole: "SRE", Tags: "go, k8s"}); err != nil {
		t.Fatal(err)
	}
	raw, found, _ := m.Get(ctx, "manualDefaults")
	if !found {
		t.Fatal("manualDefaults key not written")
	}
	want := `{"possible_role":"SRE","tags":"go, k8s","notes":""}`
	if string(raw) != want {
		t.Errorf("stored JSON = %s, want %s", raw, want)
	}
}

func TestLoadManualDefaults_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := LoadManualDefaults(ctx, nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil store err = %v, want ErrUnavailable", err)
	}
	if err := SaveManualDefaults(ctx, nil, models.ManualDefaults{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil store save err = %v, want ErrUnavailable", err)
	}

	m := NewMemory()
	_ = m.Set(ctx, models.ManualDefaultsKey, []byte("not json"))
	if _, err := LoadManualDefaults(ctx, m); err == nil {
		t.Error("expected decode error for corrupt value")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, want *Memory", s)
	}

	dir := t.TempDir()
	s, err = Open(ctx, config.StoreConfig{Backend: "sqlite", DataDir: dir})
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	defer s.Close()
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set on file sqlite: %v", err)
	}

	if _, err := Open(ctx, config.StoreConfig{Backend: "etcd"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

package filestore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/session"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(&core.Config{Storage: core.StorageConfig{Dir: dir}})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return store, dir
}

func TestStore_RoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	usr := session.User{ID: "5", Name: "T. Achieng", Phone: "256700000002", Role: session.RoleAccountant}

	if _, ok := store.Get(); ok {
		t.Fatal("fresh store should be empty")
	}
	if err := store.Set("tok-abc", usr); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// exactly two keys: the raw token and the user profile JSON
	for _, name := range []string{"token", "user.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing storage key %s: %v", name, err)
		}
	}

	sess, ok := store.Get()
	if !ok {
		t.Fatal("Get() found nothing after Set()")
	}
	if sess.Token != "tok-abc" || sess.User != usr {
		t.Errorf("Get() = %+v", sess)
	}

	// a new store instance over the same dir sees the session (reload survival)
	again, err := NewStore(&core.Config{Storage: core.StorageConfig{Dir: dir}})
	if err != nil {
		t.Fatal(err)
	}
	if sess, ok := again.Get(); !ok || sess.Token != "tok-abc" {
		t.Error("session did not survive a new store instance")
	}
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)

	// clearing an empty store is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store failed: %v", err)
	}

	if err := store.Set("tok", session.User{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("store not empty after Clear()")
	}
}

func TestStore_CorruptProfileIsRecoverable(t *testing.T) {
	store, dir := newTestStore(t)
	if err := store.Set("tok", session.User{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "user.json"), []byte("{corrupt"), 0o600); err != nil {
		t.Fatal(err)
	}

	sess, ok := store.Get()
	if !ok || sess.Token != "tok" {
		t.Errorf("token must survive a corrupt profile; got %+v ok=%v", sess, ok)
	}
}

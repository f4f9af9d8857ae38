package httpstore_test

import (
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/twodo/internal/adapters/httpserver"
	"github.com/example/twodo/internal/adapters/httpstore"
	"github.com/example/twodo/internal/adapters/sqlite"
	"github.com/example/twodo/internal/core/fault"
	"github.com/example/twodo/internal/db"
	"github.com/example/twodo/internal/ports/secondary"
)

var due = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// newClient wires a real sqlite store behind the HTTP server and points a
// client at it, so the whole wire format is exercised end to end.
func newClient(t *testing.T) *httpstore.Client {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := conn.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	srv := httptest.NewServer(httpserver.NewServer(sqlite.NewTaskStore(conn)).Handler(io.Discard))
	t.Cleanup(func() {
		srv.Close()
		conn.Close()
	})

	return httpstore.NewClient(srv.URL)
}

func TestInsertGetRoundTrip(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	lat, lon := 48.8566, 2.3522
	id, err := client.Insert(ctx, secondary.TaskRecord{
		UserID: "user-1", Name: "louvre", DueAt: due, Latitude: &lat, Longitude: &lon,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatalf("store must assign an id")
	}

	got, err := client.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "louvre" || !got.DueAt.Equal(due) || got.UserID != "user-1" {
		t.Errorf("got %+v", got)
	}
	if got.Latitude == nil || *got.Latitude != lat || got.Longitude == nil || *got.Longitude != lon {
		t.Errorf("position = %v, %v", got.Latitude, got.Longitude)
	}
}

func TestNullPositionSurvivesWire(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	id, err := client.Insert(ctx, secondary.TaskRecord{UserID: "user-1", Name: "nowhere", DueAt: due})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := client.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Errorf("null position became %v, %v", got.Latitude, got.Longitude)
	}
}

func TestPatchAndDelete(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	id, err := client.Insert(ctx, secondary.TaskRecord{UserID: "user-1", Name: "old", DueAt: due})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	name := "new"
	completed := true
	if err := client.Patch(ctx, id, secondary.TaskPatch{Name: &name, Completed: &completed}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	got, _ := client.Get(ctx, id)
	if got.Name != "new" || !got.Completed {
		t.Errorf("after patch: %+v", got)
	}
	if !got.DueAt.Equal(due) {
		t.Errorf("unpatched due time changed: %v", got.DueAt)
	}

	if err := client.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := client.Get(ctx, id); !fault.IsNotFound(err) {
		t.Errorf("get after delete kind = %q, want not_found", fault.KindOf(err))
	}
}

func TestNotFoundMapping(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	name := "x"
	if err := client.Patch(ctx, "TASK-000099", secondary.TaskPatch{Name: &name}); !fault.IsNotFound(err) {
		t.Errorf("patch kind = %q, want not_found", fault.KindOf(err))
	}
	if err := client.Delete(ctx, "TASK-000099"); !fault.IsNotFound(err) {
		t.Errorf("delete kind = %q, want not_found", fault.KindOf(err))
	}
}

func TestListOrderedByDueThenID(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	for _, rec := range []secondary.TaskRecord{
		{UserID: "user-1", Name: "later", DueAt: due.Add(time.Hour)},
		{UserID: "user-1", Name: "sooner", DueAt: due},
		{UserID: "user-2", Name: "foreign", DueAt: due},
	} {
		if _, err := client.Insert(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := client.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "sooner" || got[1].Name != "later" {
		t.Errorf("list = %+v", got)
	}
}

func TestPollingSubscriptionDeliversOnChange(t *testing.T) {
	client := newClient(t)
	client.SetPollInterval(10 * time.Millisecond)
	ctx := context.Background()

	sub, err := client.Subscribe(ctx, "user-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case recs := <-sub.Snapshots():
		if len(recs) != 0 {
			t.Fatalf("initial snapshot = %+v, want empty", recs)
		}
	case <-time.After(time.Second):
		t.Fatalf("no initial snapshot")
	}

	id, err := client.Insert(ctx, secondary.TaskRecord{UserID: "user-1", Name: "walk the dog", DueAt: due})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	select {
	case recs := <-sub.Snapshots():
		if len(recs) != 1 || recs[0].ID != id {
			t.Errorf("snapshot = %+v", recs)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poll never picked up the insert")
	}
}

func TestSubscriptionClosesCleanly(t *testing.T) {
	client := newClient(t)
	client.SetPollInterval(10 * time.Millisecond)

	sub, err := client.Subscribe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-sub.Snapshots():
			if !open {
				return
			}
		case <-deadline:
			t.Fatalf("snapshot channel did not close after Close")
		}
	}
}

package upload_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/session"
	"github.com/umoja/portal/core/upload"
	"github.com/umoja/portal/core/works"
	testutil "github.com/umoja/portal/tests"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

func testFlow() *upload.Flow {
	return upload.NewFlow(&core.Config{Upload: core.UploadConfig{MaxPhotoSize: 5 << 20}})
}

func TestFlow_SelectFile(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{"valid png", pngBytes(1024), ""},
		{"valid jpeg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...), ""},
		{"oversized image", pngBytes(6 << 20), "5MB limit"},
		{"pdf is not an image", []byte("%PDF-1.7 ..."), "only image files"},
		{"empty file", nil, "only image files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := testFlow()
			err := flow.SelectFile("proof.png", bytes.NewReader(tt.data))

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("SelectFile() failed: %v", err)
				}
				if flow.Staged() == nil {
					t.Error("file not staged")
				}
				return
			}

			if !core.IsValidationError(err) {
				t.Fatalf("want local validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q; want it to mention %q", err.Error(), tt.wantErr)
			}
			if flow.Staged() != nil {
				t.Error("rejected file must not be staged")
			}
		})
	}
}

// endlessReader serves a PNG header followed by zeros forever, counting
// how much is actually consumed.
type endlessReader struct {
	served int64
}

func (r *endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
		if r.served+int64(i) < int64(len(pngHeader)) {
			p[i] = pngHeader[r.served+int64(i)]
		}
	}
	r.served += int64(len(p))
	return len(p), nil
}

func TestFlow_SelectFileBoundsTheRead(t *testing.T) {
	flow := testFlow()
	src := &endlessReader{}

	err := flow.SelectFile("proof.png", src)
	if !core.IsValidationError(err) || !strings.Contains(err.Error(), "5MB limit") {
		t.Fatalf("want size validation error, got %v", err)
	}
	if flow.Staged() != nil {
		t.Error("rejected file must not be staged")
	}
	// one byte over the limit is enough to reject; the rest must stay unread
	if max := int64(5<<20) + 1; src.served > max+1024 {
		t.Errorf("read %d bytes from an oversized file; want at most %d", src.served, max)
	}
}

func TestFlow_SubmitWithoutSelection(t *testing.T) {
	flow := testFlow()
	err := flow.Submit(context.Background(), nil, "/site/attendance/finalize", "2026-08-31", nil)
	if !core.IsValidationError(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestFlow_FailureKeepsStagedFile(t *testing.T) {
	srv := testutil.NewServer()
	conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL(), Timeout: time.Second}}
	api := apiclient.NewClient(conf, nil)
	srv.Close() // every request is now a transport failure

	flow := testFlow()
	if err := flow.SelectFile("proof.png", bytes.NewReader(pngBytes(512))); err != nil {
		t.Fatal(err)
	}
	err := flow.Submit(context.Background(), api, "/site/attendance/finalize", "2026-08-31", nil)
	if !core.IsTransportError(err) {
		t.Fatalf("want transport error, got %v", err)
	}
	if flow.Staged() == nil {
		t.Error("a transient failure must not lose the staged file")
	}
}

func TestFinalizeAttendance(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL(), Timeout: 2 * time.Second}}
	api := apiclient.NewClient(conf, nil)
	token := srv.TokenFor(session.User{ID: "3", Role: session.RoleSiteManager})
	api.SetTokenSource(func() string { return token })

	flow := testFlow()
	if err := flow.SelectFile("group.jpg", bytes.NewReader(pngBytes(2048))); err != nil {
		t.Fatal(err)
	}

	entries := []works.AttendanceEntry{
		{EmployeeID: "e1", Status: "present"},
		{EmployeeID: "e2", Status: "absent"},
	}
	if err := works.FinalizeAttendance(context.Background(), api, flow, "2026-08-31", entries); err != nil {
		t.Fatalf("FinalizeAttendance() failed: %v", err)
	}
	if flow.Staged() != nil {
		t.Error("staged file must clear after a successful submit")
	}

	// the finalized day is now visible on the attendance screen
	screen := works.NewAttendanceScreen(api)
	if err := screen.Load(context.Background(), apiclient.Params{"date": "2026-08-31"}); err != nil {
		t.Fatal(err)
	}
	if len(screen.Items()) != 1 {
		t.Errorf("finalized record not listed; items = %d", len(screen.Items()))
	}
}

func TestFinalizeAttendance_InvalidEntry(t *testing.T) {
	flow := testFlow()
	if err := flow.SelectFile("group.jpg", bytes.NewReader(pngBytes(2048))); err != nil {
		t.Fatal(err)
	}

	entries := []works.AttendanceEntry{{EmployeeID: "", Status: "present"}}
	err := works.FinalizeAttendance(context.Background(), nil, flow, "2026-08-31", entries)
	if !core.IsValidationError(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if flow.Staged() == nil {
		t.Error("validation failure must keep the staged file")
	}
}

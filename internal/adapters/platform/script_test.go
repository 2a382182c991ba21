package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
	"github.com/viralforge/publish-review-service/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeScript drops an executable shell script into dir and returns its path.
// The tests drive ScriptPublisher with sh instead of the python uploader.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestPublishParsesIDFromStdout(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "upload.sh", `echo "Video id 'xyz789' was successfully uploaded."`)
	publisher := NewScriptPublisher(testLogger(), Config{
		Interpreter:  "sh",
		UploadScript: script,
		CallTimeout:  5 * time.Second,
	})

	id, err := publisher.Publish(context.Background(), ports.PublishRequest{
		AssetPath:  "clip.mp4",
		Title:      "clip",
		Visibility: domain.VisibilityUnlisted,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if id != "xyz789" {
		t.Fatalf("got id %q, want xyz789", id)
	}
}

func TestPublishFallsBackToSuccessFile(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "upload.sh", `echo "upload in progress"`)
	if err := os.WriteFile(filepath.Join(dir, "success.txt"), []byte("Video uploaded successfully. ID: fb42\n"), 0o644); err != nil {
		t.Fatalf("write success file: %v", err)
	}
	publisher := NewScriptPublisher(testLogger(), Config{
		Interpreter:  "sh",
		UploadScript: script,
		StagingDir:   dir,
		CallTimeout:  5 * time.Second,
	})

	id, err := publisher.Publish(context.Background(), ports.PublishRequest{AssetPath: "clip.mp4", Title: "clip", Visibility: domain.VisibilityUnlisted})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if id != "fb42" {
		t.Fatalf("got id %q, want fb42", id)
	}
}

func TestPublishProcessFailureCarriesExitCode(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "upload.sh", "echo \"quota exceeded\" >&2\nexit 3")
	publisher := NewScriptPublisher(testLogger(), Config{
		Interpreter:  "sh",
		UploadScript: script,
		CallTimeout:  5 * time.Second,
	})

	_, err := publisher.Publish(context.Background(), ports.PublishRequest{AssetPath: "clip.mp4", Title: "clip", Visibility: domain.VisibilityUnlisted})
	var publishErr *domain.PublishError
	if !errors.As(err, &publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if publishErr.Reason != domain.PublishReasonProcessFailure {
		t.Fatalf("got reason %s", publishErr.Reason)
	}
	if publishErr.ExitCode != 3 {
		t.Fatalf("got exit code %d, want 3", publishErr.ExitCode)
	}
	if publishErr.Detail != "quota exceeded" {
		t.Fatalf("got detail %q", publishErr.Detail)
	}
}

func TestPublishNoIdentifier(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "upload.sh", `echo "done"`)
	publisher := NewScriptPublisher(testLogger(), Config{
		Interpreter:  "sh",
		UploadScript: script,
		StagingDir:   dir,
		CallTimeout:  5 * time.Second,
	})

	_, err := publisher.Publish(context.Background(), ports.PublishRequest{AssetPath: "clip.mp4", Title: "clip", Visibility: domain.VisibilityUnlisted})
	var publishErr *domain.PublishError
	if !errors.As(err, &publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if publishErr.Reason != domain.PublishReasonIdentifierUnavailable {
		t.Fatalf("got reason %s", publishErr.Reason)
	}
}

func TestPublishDeadline(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "upload.sh", "sleep 5")
	publisher := NewScriptPublisher(testLogger(), Config{
		Interpreter:  "sh",
		UploadScript: script,
		CallTimeout:  100 * time.Millisecond,
	})

	_, err := publisher.Publish(context.Background(), ports.PublishRequest{AssetPath: "clip.mp4", Title: "clip", Visibility: domain.VisibilityUnlisted})
	var publishErr *domain.PublishError
	if !errors.As(err, &publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if publishErr.Detail != "call deadline exceeded" {
		t.Fatalf("got detail %q", publishErr.Detail)
	}
}

func TestSetVisibility(t *testing.T) {
	dir := t.TempDir()
	ok := writeScript(t, dir, "privacy-ok.sh", "exit 0")
	failing := writeScript(t, dir, "privacy-fail.sh", "echo \"video not found\" >&2\nexit 1")

	publisher := NewScriptPublisher(testLogger(), Config{Interpreter: "sh", MetadataScript: ok, CallTimeout: 5 * time.Second})
	if err := publisher.SetVisibility(context.Background(), "xyz789", ports.MetadataUpdate{Title: "clip", Visibility: domain.VisibilityPublic}); err != nil {
		t.Fatalf("set visibility: %v", err)
	}

	publisher = NewScriptPublisher(testLogger(), Config{Interpreter: "sh", MetadataScript: failing, CallTimeout: 5 * time.Second})
	err := publisher.SetVisibility(context.Background(), "xyz789", ports.MetadataUpdate{Title: "clip", Visibility: domain.VisibilityPublic})
	var visErr *domain.VisibilityError
	if !errors.As(err, &visErr) {
		t.Fatalf("expected visibility error, got %v", err)
	}
	if visErr.ExitCode != 1 || visErr.Detail != "video not found" {
		t.Fatalf("unexpected error fields: %+v", visErr)
	}
}

func TestParsePlatformID(t *testing.T) {
	cases := []struct {
		output string
		want   string
	}{
		{"Uploading file...\nVideo id 'k3J9x' was successfully uploaded.\n", "k3J9x"},
		{"Video uploaded successfully. ID: k3J9x", "k3J9x"},
		{"nothing useful here", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := parsePlatformID(tc.output); got != tc.want {
			t.Fatalf("parse %q: got %q, want %q", tc.output, got, tc.want)
		}
	}
}

package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMoveDownloadsSkipsContractFilesAndDirectories(t *testing.T) {
	svc := newTestService(t)
	writeDownload(t, svc, "report.pdf", "pdf-bytes")
	writeDownload(t, svc, "data.csv", "a,b,c")
	writeDownload(t, svc, resultsFileName, `{}`)
	writeDownload(t, svc, screenshotFileName, "png-bytes")
	if err := os.Mkdir(filepath.Join(svc.downloadsDir(), "partial"), 0o755); err != nil {
		t.Fatal(err)
	}

	outputDir := filepath.Join(t.TempDir(), "deep", "nested", "out")
	moved, err := svc.moveDownloads(outputDir)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(moved) != 2 {
		t.Fatalf("moved = %v, want 2 entries", moved)
	}

	for _, name := range []string{"report.pdf", "data.csv"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Fatalf("%s not moved: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(svc.downloadsDir(), name)); !os.IsNotExist(err) {
			t.Fatalf("%s still in downloads: %v", name, err)
		}
	}
	for _, name := range []string{resultsFileName, screenshotFileName, "partial"} {
		if _, err := os.Stat(filepath.Join(svc.downloadsDir(), name)); err != nil {
			t.Fatalf("%s should stay in downloads: %v", name, err)
		}
	}
}

func TestMoveDownloadsOverwritesExisting(t *testing.T) {
	svc := newTestService(t)
	writeDownload(t, svc, "report.pdf", "new-bytes")

	outputDir := t.TempDir()
	dest := filepath.Join(outputDir, "report.pdf")
	if err := os.WriteFile(dest, []byte("old-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.moveDownloads(outputDir); err != nil {
		t.Fatalf("move: %v", err)
	}

	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "new-bytes" {
		t.Fatalf("dest content = %q, want new-bytes", b)
	}
}

func TestMoveDownloadsNothingToMove(t *testing.T) {
	svc := newTestService(t)
	writeDownload(t, svc, resultsFileName, `{}`)

	outputDir := filepath.Join(t.TempDir(), "out")
	moved, err := svc.moveDownloads(outputDir)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(moved) != 0 {
		t.Fatalf("moved = %v, want none", moved)
	}
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		t.Fatalf("output dir not created: %v", err)
	}
}

func TestMoveDownloadsSkipsSymlinks(t *testing.T) {
	svc := newTestService(t)
	writeDownload(t, svc, "real.txt", "content")
	link := filepath.Join(svc.downloadsDir(), "link.txt")
	if err := os.Symlink(filepath.Join(svc.downloadsDir(), "real.txt"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	moved, err := svc.moveDownloads(t.TempDir())
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(moved) != 1 || filepath.Base(moved[0]) != "real.txt" {
		t.Fatalf("moved = %v, want only real.txt", moved)
	}
	if _, err := os.Lstat(link); err != nil {
		t.Fatalf("symlink should stay put: %v", err)
	}
}

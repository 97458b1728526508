package config

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(stored, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("config.yaml", stored)
	r.StoreText("dumps/10-after", "late")
	r.StoreText("dumps/2-before", "early")

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	want := "MANIFEST,config.yaml,dumps/2-before,dumps/10-after"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("archive entries = %s, want %s", got, want)
	}
}

func TestReport_DuplicateNames(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreText("dumps/1-add.txt", "1")
	r.StoreText("dumps/1-add.txt", "2")
	r.Store("result-x.html", "a/x.html")
	r.Store("result-x.html", "a/x.html")
	r.Store("result-x.html", "b/x.html")

	var names []string
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"dumps/1-add.txt", "dumps/1-add~2.txt", "result-x.html", "result-x~2.html"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_Concurrent(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Store(fmt.Sprintf("result-%d.html", i%4), fmt.Sprintf("out/%d.html", i))
		}()
	}
	wg.Wait()

	if len(r.entries) != 16 {
		t.Errorf("stored %d entries, want 16", len(r.entries))
	}
}

func TestReport_StoreCopy(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "docs")
	if err := os.MkdirAll(filepath.Join(src, "landing"), 0755); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(src, "landing", "hero.yaml")
	if err := os.WriteFile(doc, []byte("kind: hero\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("source", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// later changes are not visible in the report
	if err := os.WriteFile(doc, []byte("kind: faq\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	rc, err := zr.Open("source/landing/hero.yaml")
	if err != nil {
		t.Fatalf("copied document is missing: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "kind: hero\n" {
		t.Errorf("copied document = %q", data)
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.StoreText("ignored", "nothing")
	if r.Name() != "" {
		t.Error("Name() of nil report is not empty")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qap/internal/inventory"
	"qap/internal/services"
	"qap/internal/testsupport"
)

func runSublist(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSublistRequiresThreeArgs(t *testing.T) {
	for _, args := range [][]string{nil, {"site"}, {"site", "out.yml"}, {"site", "out.yml", "anat", "extra"}} {
		if _, err := runSublist(t, args...); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}
}

func TestSublistMissingRoot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.yml")
	_, err := runSublist(t, filepath.Join(dir, "missing"), out, "anat")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if services.ExitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %d", services.ExitCode(err))
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no manifest written, stat err = %v", statErr)
	}
}

func TestSublistWritesManifest(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	paths := testsupport.WriteTree(t, site,
		"SUB01/SES01/anat_scan/T1_mprage.nii",
		"SUB02/SES01/rest_run1/bold_func.nii",
	)
	out := filepath.Join(dir, "lists", "anat.yml")

	stdout, err := runSublist(t, site, out, "anat")
	if err != nil {
		t.Fatalf("qap-sublist: %v", err)
	}
	if !strings.Contains(stdout, "Wrote 1 scans") {
		t.Fatalf("unexpected stdout %q", stdout)
	}

	m, err := inventory.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got, ok := m.Lookup(inventory.Identity{Subject: "SUB01", Session: "SES01", Scan: "anat_scan", Modality: inventory.Anatomical})
	if !ok || got != paths[0] {
		t.Fatalf("Lookup = (%q, %v), want %q", got, ok, paths[0])
	}
	if m.Len() != 1 {
		t.Fatalf("expected only anatomical scans, got %v", m)
	}
}

func TestSublistUnknownScanTypeWritesEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	testsupport.WriteTree(t, site, "SUB01/SES01/anat_scan/T1.nii")
	out := filepath.Join(dir, "dwi.yml")

	if _, err := runSublist(t, site, out, "dwi"); err != nil {
		t.Fatalf("qap-sublist: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("expected empty manifest, got %q", data)
	}
}

func TestSublistMissingRootUnknownScanType(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.yml")
	_, err := runSublist(t, filepath.Join(dir, "missing"), out, "dwi")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no manifest written, stat err = %v", statErr)
	}
}

func TestSublistPaddedScanTypeWritesEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	testsupport.WriteTree(t, site, "SUB01/SES01/anat_scan/T1.nii")
	out := filepath.Join(dir, "padded.yml")

	if _, err := runSublist(t, site, out, " anat\n"); err != nil {
		t.Fatalf("qap-sublist: %v", err)
	}
	m, err := inventory.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty manifest, got %v", m)
	}
}

func TestSublistWithoutConfigLeavesDataDirAlone(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	testsupport.WriteTree(t, site, "SUB01/SES01/anat_scan/T1.nii")

	if _, err := runSublist(t, site, filepath.Join(dir, "anat.yml"), "anat"); err != nil {
		t.Fatalf("qap-sublist: %v", err)
	}
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "qap")
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err = %v", dataDir, err)
	}
}

package inventory

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"qap/internal/services"
)

func sampleManifest() Manifest {
	m := NewManifest()
	m.Insert(Identity{Subject: "SUB02", Session: "SES01", Scan: "rest_run1", Modality: Functional}, "/data/site/SUB02/SES01/rest_run1/bold.nii")
	m.Insert(Identity{Subject: "SUB01", Session: "SES01", Scan: "anat_scan", Modality: Anatomical}, "/data/site/SUB01/SES01/anat_scan/T1_mprage.nii")
	m.Insert(Identity{Subject: "SUB01", Session: "SES01", Scan: "anat 2", Modality: Anatomical}, "/data/site/SUB01/SES01/anat 2/T1: copy.nii")
	return m
}

func TestEncodeLayout(t *testing.T) {
	m := NewManifest()
	m.Insert(Identity{Subject: "SUB01", Session: "SES01", Scan: "anat_scan", Modality: Anatomical}, "/site/SUB01/SES01/anat_scan/T1_mprage.nii")

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := strings.Join([]string{
		"SUB01:",
		"  SES01:",
		"    anatomical_scan:",
		"      anat_scan: /site/SUB01/SES01/anat_scan/T1_mprage.nii",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected encoding:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	for _, m := range []Manifest{nil, NewManifest()} {
		var buf bytes.Buffer
		if err := Encode(&buf, m); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "{}" {
			t.Fatalf("expected {} for empty manifest, got %q", buf.String())
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := sampleManifest()
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, m)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	m, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m == nil || m.Len() != 0 {
		t.Fatalf("expected empty manifest, got %v", m)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader("SUB01: [1, 2]\n")); err == nil {
		t.Fatal("expected error for non-mapping subject")
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists", "anat.yml")
	m := sampleManifest()
	if err := WriteFile(context.Background(), path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("file round trip mismatch:\n got %v\nwant %v", got, m)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteFileCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anat.yml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteFile(ctx, path, sampleManifest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no manifest written, stat err = %v", statErr)
	}
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"qap/internal/services"
)

func TestReadKeyFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		access  string
		secret  string
		wantErr bool
	}{
		{
			name:    "console export",
			content: "\ufeffAccess key ID,Secret access key\nAKIA1,s3cr3t\n",
			access:  "AKIA1",
			secret:  "s3cr3t",
		},
		{
			name:    "legacy export with user column",
			content: "User Name,Access Key Id,Secret Access Key\n\"qap\",AKIA2,abc/def\n",
			access:  "AKIA2",
			secret:  "abc/def",
		},
		{
			name:    "key value lines",
			content: "AWSAccessKeyId=AKIA3\nAWSSecretKey=xyz\n",
			access:  "AKIA3",
			secret:  "xyz",
		},
		{name: "header only", content: "Access key ID,Secret access key\n", wantErr: true},
		{name: "unknown columns", content: "id,key\n1,2\n", wantErr: true},
		{name: "missing secret", content: "AWSAccessKeyId=AKIA4\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "creds.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			access, secret, err := readKeyFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("readKeyFile: %v", err)
			}
			if access != tt.access || secret != tt.secret {
				t.Fatalf("got (%q, %q), want (%q, %q)", access, secret, tt.access, tt.secret)
			}
		})
	}
}

func TestResolveCredentials(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "keys.csv")
	if err := os.WriteFile(csvPath, []byte("Access key ID,Secret access key\nAKIA,secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	creds, err := resolveCredentials(csvPath, "default")
	if err != nil {
		t.Fatalf("resolveCredentials: %v", err)
	}
	value, err := creds.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value.AccessKeyID != "AKIA" || value.SecretAccessKey != "secret" {
		t.Fatalf("unexpected credentials %+v", value)
	}

	badPath := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(badPath, []byte("nothing"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveCredentials(badPath, "default"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	if creds, err := resolveCredentials("", "default"); err != nil || creds == nil {
		t.Fatalf("expected chain credentials, got (%v, %v)", creds, err)
	}
}

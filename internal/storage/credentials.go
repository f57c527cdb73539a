package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7/pkg/credentials"

	"qap/internal/services"
)

// resolveCredentials picks a credential source for credsPath. CSV files are
// AWS console key exports, other files are shared-credentials files, and an
// empty path falls back to the environment and instance metadata.
func resolveCredentials(credsPath, profile string) (*credentials.Credentials, error) {
	credsPath = strings.TrimSpace(credsPath)
	if credsPath == "" {
		return credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
			&credentials.FileAWSCredentials{Profile: profile},
			&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
		}), nil
	}
	if strings.EqualFold(filepath.Ext(credsPath), ".csv") {
		accessKey, secretKey, err := readKeyFile(credsPath)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "storage", "load credentials", credsPath, err)
		}
		return credentials.NewStaticV4(accessKey, secretKey, ""), nil
	}
	return credentials.NewFileAWSCredentials(credsPath, profile), nil
}

// readKeyFile accepts either the console CSV export (a header row naming the
// access key and secret columns) or AWSAccessKeyId=/AWSSecretKey= lines.
func readKeyFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	content := string(data)
	if strings.Contains(content, "AWSAccessKeyId") {
		return parseKeyValueCreds(content)
	}
	return parseCSVCreds(content)
}

func parseKeyValueCreds(content string) (string, string, error) {
	var accessKey, secretKey string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "AWSAccessKeyId":
			accessKey = strings.TrimSpace(value)
		case "AWSSecretKey":
			secretKey = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	if accessKey == "" || secretKey == "" {
		return "", "", fmt.Errorf("missing AWSAccessKeyId or AWSSecretKey")
	}
	return accessKey, secretKey, nil
}

func parseCSVCreds(content string) (string, string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return "", "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return "", "", fmt.Errorf("expected a header row and a key row")
	}

	accessCol, secretCol := -1, -1
	for i, name := range records[0] {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case strings.Contains(normalized, "access key id"):
			accessCol = i
		case strings.Contains(normalized, "secret access key"):
			secretCol = i
		}
	}
	if accessCol < 0 || secretCol < 0 {
		return "", "", fmt.Errorf("header must name the access key id and secret access key columns")
	}
	row := records[1]
	if accessCol >= len(row) || secretCol >= len(row) {
		return "", "", fmt.Errorf("key row is missing columns")
	}
	accessKey := strings.TrimSpace(row[accessCol])
	secretKey := strings.TrimSpace(row[secretCol])
	if accessKey == "" || secretKey == "" {
		return "", "", fmt.Errorf("empty access key or secret")
	}
	return accessKey, secretKey, nil
}

package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"onboarding/backend/internal/errdefs"
)

// Generate writes a new pair of empty revision files into dir, named with a
// timestamp version and a slug of message. The files are stubs for human
// editing and are never applied automatically. An empty message is a usage
// error and nothing is written.
func Generate(dir, message string, now time.Time) (upPath, downPath string, err error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return "", "", errdefs.Usagef("migration message is required")
	}

	version := now.UTC().Format("20060102150405")
	base := version + "_" + slugify(msg)
	upPath = filepath.Join(dir, base+".up.sql")
	downPath = filepath.Join(dir, base+".down.sql")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	up := fmt.Sprintf("-- %s\n-- Write the forward migration here.\n", msg)
	if err := os.WriteFile(upPath, []byte(up), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", upPath, err)
	}

	down := fmt.Sprintf("-- %s\n-- Write the rollback here.\n", msg)
	if err := os.WriteFile(downPath, []byte(down), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", downPath, err)
	}

	return upPath, downPath, nil
}

// slugify lowercases message and collapses anything that is not a letter or
// digit into single underscores, matching the shipped migration filenames.
func slugify(message string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(message) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

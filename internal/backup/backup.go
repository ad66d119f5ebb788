package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	filePrefix      = "inventory_"
	fileSuffix      = ".db"
	retentionPeriod = 7 * 24 * time.Hour
)

// Run copies the store file to a backup stamped with today's date, unless that
// backup already exists, then prunes backups older than the retention window.
// Idempotent per calendar day; meant to be called at startup and on demand,
// not from a timer.
func Run(dbPath, backupDir string) (string, error) {
	return runAt(dbPath, backupDir, time.Now())
}

func runAt(dbPath, backupDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create backup dir: %w", err)
	}

	target := filepath.Join(backupDir, filePrefix+now.Format("20060102")+fileSuffix)
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	if err := copyFile(dbPath, target); err != nil {
		return "", err
	}

	prune(backupDir, now)
	return target, nil
}

// prune removes backups whose filename date falls outside the retention
// window. Unparseable names and per-file remove errors are skipped, never
// fatal.
func prune(backupDir string, now time.Time) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}

	cutoff := now.Add(-retentionPeriod)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		fileDate, err := time.Parse("20060102", dateStr)
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(backupDir, name))
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open store file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("could not copy store file: %w", err)
	}
	return out.Sync()
}

package jobs

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/config"
)

// StartJanitor periodically sweeps the scratch directory for files older
// than cfg.CleanupAfter. Normal jobs delete their own artifacts; the janitor
// reclaims orphans left behind by a crash or shutdown mid-job. Age-gating
// keeps it from touching an in-flight job's file.
func StartJanitor(cfg *config.Config) {
	ticker := time.NewTicker(cfg.CleanupAfter)

	go func() {
		for range ticker.C {
			log.Println("🧹 Janitor: Starting scheduled cleanup...")
			removed := sweep(cfg.DownloadDir, cfg.CleanupAfter)
			log.Printf("✅ Janitor: Cleanup finished, removed %d file(s).", removed)
		}
	}()
}

func sweep(dir string, maxAge time.Duration) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("❌ Janitor Error: Could not read %s: %v", dir, err)
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("❌ Janitor Error: Could not remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}

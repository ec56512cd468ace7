package rankingsparser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openranks/rankings-api/logging"
)

// downloadSourceFile fetches one source CSV and stores it at path. The body
// is written as-is; encoding detection happens at read time in ExtractFile.
func downloadSourceFile(path string, url string) error {
	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", response.StatusCode, url)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logging.Warn("Failed to close downloaded file", "error", err)
		}
	}()

	if _, err := io.Copy(outFile, response.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debug("Source downloaded", "path", path, "url", url)
	return nil
}

// downloadSources fetches the configured source URLs concurrently into
// dataDir. Sources without a configured URL are expected to already exist on
// disk (the ABS list has no public export URL).
func downloadSources(dataDir string, sources map[string]string) error {
	if len(sources) == 0 {
		return nil
	}

	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for fileName, url := range sources {
		wg.Add(1)

		go func(fileName string, url string) {
			defer wg.Done()
			if err := downloadSourceFile(filepath.Join(dataDir, fileName), url); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(fileName, url)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}

	return nil
}

// pkg/download/download.go - artifact fetching for the build-time download step.
//
// Plain HTTP GET with header-driven filename resolution; every artifact lands
// in a manifest-declared directory so the install pipeline can find it later
// by pattern match.

package download

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/retry"
)

// Timeout bounds a single download request.
const Timeout = 10 * time.Minute

var contentDispositionName = regexp.MustCompile(`filename="?([^";]+)"?`)

// DetermineFilename picks the saved file's name with the following priority:
// the Content-Disposition filename, the final URL's tail when it matches the
// expected pattern, then the default name.
func DetermineFilename(contentDisposition, finalURL, pattern, defaultName string) string {
	if m := contentDispositionName.FindStringSubmatch(contentDisposition); m != nil {
		return m[1]
	}
	if u, err := url.Parse(finalURL); err == nil {
		tail := path.Base(u.Path)
		if ok, _ := filepath.Match(pattern, tail); ok && tail != "." && tail != "/" {
			return tail
		}
	}
	return defaultName
}

// File downloads url into destDir. The file name is resolved from the
// response; an existing file of the same name is replaced.
func File(rawURL, destDir, pattern, defaultName string) error {
	cfg := retry.Config{MaxAttempts: 3, Interval: time.Second, Multiplier: 2}
	return retry.Do(cfg, func() error {
		logging.Info("Starting download", "url", rawURL)

		client := &http.Client{Timeout: Timeout}
		resp, err := client.Get(rawURL)
		if err != nil {
			return fmt.Errorf("requesting %s: %w", rawURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected HTTP status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// A client error will not heal on its own.
				return &retry.NonRetryable{Err: err}
			}
			return err
		}

		name := DetermineFilename(resp.Header.Get("Content-Disposition"),
			resp.Request.URL.String(), pattern, defaultName)
		dest := filepath.Join(destDir, name)

		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", destDir, err)
		}
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("replacing %s: %w", dest, err)
		}

		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("opening destination file: %w", err)
		}
		defer out.Close()

		if _, err := io.Copy(out, resp.Body); err != nil {
			return fmt.Errorf("writing downloaded data: %w", err)
		}

		logging.Info("Download complete", "file", dest)
		return nil
	})
}

// marketplaceURL is the gallery endpoint serving packaged editor extensions.
const marketplaceURL = "https://marketplace.visualstudio.com/_apis/public/gallery/publishers"

// ExtensionURL builds the download URL for one packaged extension.
func ExtensionURL(publisher, id, version string) string {
	return fmt.Sprintf("%s/%s/vsextensions/%s/%s/vspackage",
		marketplaceURL, publisher, id, version)
}

// ExtensionFileName predicts the saved package name so the install pipeline
// can discover it later by publisher pattern.
func ExtensionFileName(publisher, id, version string) string {
	return fmt.Sprintf("%s.%s-%s.vsix", strings.ToLower(publisher), strings.ToLower(id), version)
}

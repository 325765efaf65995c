// pkg/template/zowe.go - connection templating and backup handling for
// zowe.config.json.

package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/fileops"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// ZoweConfigName is the live connection-configuration file inside the
// workspace subtree.
const ZoweConfigName = "zowe.config.json"

const (
	backupGlob       = "zowe.config.backup_*.json"
	backupTimeFormat = "20060102_150405"
)

// ConnectionParams holds the values stamped into zowe.config.json. Ports and
// the codepage are kept as strings; the template's quoted numeric placeholders
// are matched with their surrounding quotes so the result stays valid JSON.
type ConnectionParams struct {
	Host        string
	User        string
	Password    string
	ZosmfPort   string
	TsoCodepage string
	SSHPort     string
	FTPPort     string
	RSEPort     string
	RSEEncoding string
	DebugPort   string
}

// DefaultConnectionParams returns the documented service defaults.
func DefaultConnectionParams() ConnectionParams {
	return ConnectionParams{
		ZosmfPort:   "443",
		TsoCodepage: "1047",
		SSHPort:     "22",
		FTPPort:     "21",
		RSEPort:     "6800",
		RSEEncoding: "IBM-937",
		DebugPort:   "8143",
	}
}

// ApplyConnection substitutes every connection placeholder in the config file.
func ApplyConnection(configPath string, p ConnectionParams) error {
	subs := []struct{ pattern, replacement string }{
		{"_HOST_", p.Host},
		{"_USER_", p.User},
		{"_PASSWORD_", p.Password},
		{`"_ZOSMF_PORT_"`, p.ZosmfPort},
		{"_TSO_CODEPAGE_", p.TsoCodepage},
		{`"_SSH_PORT_"`, p.SSHPort},
		{`"_FTP_PORT_"`, p.FTPPort},
		{`"_RSE_PORT_"`, p.RSEPort},
		{"_RSE_ENCODING_", p.RSEEncoding},
		{`"_DEBUG_PORT_"`, p.DebugPort},
	}
	for _, s := range subs {
		if err := ReplaceInFile(configPath, s.pattern, s.replacement); err != nil {
			return err
		}
	}
	return nil
}

// Backup copies the live config next to itself with a sortable timestamp
// suffix and returns the backup path.
func Backup(configPath string) (string, error) {
	dir := filepath.Dir(configPath)
	stamp := time.Now().Format(backupTimeFormat)
	backupPath := filepath.Join(dir, fmt.Sprintf("zowe.config.backup_%s.json", stamp))
	if err := fileops.CopyFile(configPath, backupPath); err != nil {
		return "", fmt.Errorf("backing up %s: %w", configPath, err)
	}
	logging.Info("Configuration backed up", "backup", backupPath)
	return backupPath, nil
}

// RestoreLatestBackup restores the lexicographically-latest backup in dir over
// the live config, then deletes every backup file, leaving exactly one live
// config and zero backups. No backups present is a logged no-op.
func RestoreLatestBackup(dir string) error {
	backups, err := filepath.Glob(filepath.Join(dir, backupGlob))
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		logging.Info("No configuration backup found, skipping restore", "dir", dir)
		return nil
	}

	// Timestamp suffixes are zero-padded, so lexicographic order is
	// chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	latest := backups[0]

	configPath := filepath.Join(dir, ZoweConfigName)
	if err := fileops.CopyFile(latest, configPath); err != nil {
		return fmt.Errorf("restoring %s: %w", latest, err)
	}
	logging.Info("Configuration restored", "from", latest, "to", configPath)

	for _, b := range backups {
		if err := os.Remove(b); err != nil {
			logging.Warn("Unable to remove backup", "backup", b, "error", err)
			continue
		}
		logging.Debug("Removed backup", "backup", b)
	}
	return nil
}

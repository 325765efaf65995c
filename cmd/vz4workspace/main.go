// cmd/vz4workspace/main.go

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/installer"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/template"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/version"
)

func defaultWorkspace() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(text string) string {
	fmt.Print(text)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptWithDefault keeps the current value when the user just presses Enter.
func promptWithDefault(text, current string) string {
	if in := prompt(fmt.Sprintf("%s (default %s): ", text, current)); in != "" {
		return in
	}
	return current
}

func promptPassword(text string) string {
	fmt.Print(text)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		// Not a terminal; fall back to a plain read.
		return prompt("")
	}
	return strings.TrimSpace(string(pw))
}

func main() {
	logging.EnableANSIConsole()

	workspace := pflag.String("workspace", "", "Workspace directory (default: the executable's directory).")
	versionFlag := pflag.Bool("version", false, "Print the version and exit.")
	pflag.Parse()

	if *versionFlag {
		version.Print()
		os.Exit(0)
	}

	ws := *workspace
	if ws == "" {
		ws = defaultWorkspace()
	}
	var err error
	if ws, err = filepath.Abs(ws); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to resolve workspace: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Config{
		BaseDir:       filepath.Join(ws, "logs"),
		Level:         logging.LevelInfo,
		EnableConsole: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseLogger()

	logging.Info("Workspace", "path", ws)

	params := template.DefaultConnectionParams()
	params.Host = prompt("Enter host server address: ")
	if params.Host == "" {
		logging.Fatal("Host, user and password are all required")
	}
	params.User = prompt("Enter account name: ")
	if params.User == "" {
		logging.Fatal("Host, user and password are all required")
	}
	params.Password = promptPassword("Enter password: ")
	if params.Password == "" {
		logging.Fatal("Host, user and password are all required")
	}

	for done := false; !done; {
		fmt.Println("\nSelect a connection to configure:")
		fmt.Println("  1. zosmf")
		fmt.Println("  2. tso")
		fmt.Println("  3. ssh")
		fmt.Println("  4. ftp")
		fmt.Println("  5. rse")
		fmt.Println("  6. debug")
		fmt.Println("  7. finish workspace setup")

		switch prompt("Enter choice (1-7): ") {
		case "1":
			params.ZosmfPort = promptWithDefault("Enter zosmf port", params.ZosmfPort)
		case "2":
			params.TsoCodepage = promptWithDefault("Enter tso codepage", params.TsoCodepage)
		case "3":
			params.SSHPort = promptWithDefault("Enter ssh port", params.SSHPort)
		case "4":
			params.FTPPort = promptWithDefault("Enter ftp port", params.FTPPort)
		case "5":
			params.RSEPort = promptWithDefault("Enter rse port", params.RSEPort)
			params.RSEEncoding = promptWithDefault("Enter rse encoding", params.RSEEncoding)
		case "6":
			params.DebugPort = promptWithDefault("Enter zOpenDebug port", params.DebugPort)
		case "7":
			done = true
		default:
			fmt.Println("Invalid choice, try again.")
		}
	}

	configPath := filepath.Join(ws, installer.WorkspaceDirName, template.ZoweConfigName)
	if _, err := os.Stat(configPath); err != nil {
		logging.Fatal("Connection configuration not found", "file", configPath)
	}

	if _, err := template.Backup(configPath); err != nil {
		logging.Fatal("Backup failed", "error", err)
	}
	if err := template.ApplyConnection(configPath, params); err != nil {
		logging.Fatal("Updating connection configuration failed", "error", err)
	}
	logging.Info("Connection configuration updated", "file", configPath)
}

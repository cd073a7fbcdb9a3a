//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// //////////////////////////////////////////////////////////////////////////////
//
// _ __  __ _(_)_ _
// | '  \/ _` | | ' \
// |_|_|_\__,_|_|_||_|
//
// //////////////////////////////////////////////////////////////////////////////
func main() {
	nowTime := time.Now().UTC().Format(time.RFC3339)
	if len(os.Args) < 2 {
		log.Fatalf("Provide output directory as only command line argument")
	}
	outputDir := os.Args[1]
	absOutputPath, absOutputPathErr := filepath.Abs(outputDir)
	if absOutputPathErr != nil {
		log.Fatalf("Failed to get absolute output path. Error: %s", absOutputPathErr)
	}
	log.Printf("Output directory for buildinfo.go: %s", absOutputPath)

	// Outside a git checkout (source archives) the version is "dev".
	versionInfo := "dev"
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("git describe failed, using %q. Error: %s", versionInfo, err)
	} else {
		versionInfo = strings.TrimSpace(string(out))
	}

	outputFile := filepath.Join(outputDir, "buildinfo.go")
	outFileContents := fmt.Sprintf(`//go:generate go run ./script/buildinfo-extractor.go .
//
// Generated: %s
//

package buildinfo

var VERSION_INFO = "%s"
var BUILD_TIME = "%s"

func BuildInfo() string {
	return VERSION_INFO
}

func BuildTime() string {
	return BUILD_TIME
}
`,
		nowTime,
		versionInfo,
		nowTime)

	writeErr := os.WriteFile(outputFile, []byte(outFileContents), 0644)
	if writeErr != nil {
		log.Fatalf("Failed to write output file: %s. Error: %s", outputFile, writeErr)
	}
	log.Printf("Created output file: %s", outputFile)
}

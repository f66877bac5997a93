//go:build mage

// Package main provides build targets for heimweh using Mage.
//
// Usage:
//
//	mage build      Compile heimweh to bin/ with version information
//	mage test       Run all tests
//	mage lint       Run golangci-lint
//	mage man        Write the man page to bin/heimweh.1
//	mage install    Install heimweh to GOPATH/bin
//	mage clean      Remove build artifacts
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "heimweh"
	binaryDir  = "bin"
	cmdDir     = "./cmd/heimweh/main"
	manDir     = "./cmd/heimweh-manpage"
	versionPkg = "github.com/arthur-debert/heimweh/internal/version"
)

// ldflags stamps the version package with git describe output
func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || commit == "" {
		commit = "unknown"
	}
	date := time.Now().UTC().Format(time.RFC3339)

	return strings.Join([]string{
		fmt.Sprintf("-X %s.Version=%s", versionPkg, version),
		fmt.Sprintf("-X %s.Commit=%s", versionPkg, commit),
		fmt.Sprintf("-X %s.Date=%s", versionPkg, date),
	}, " ")
}

// Build compiles the heimweh binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Man writes the man page to bin/heimweh.1.
func Man() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	page, err := sh.Output(binGo, "run", manDir)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(binaryDir, binaryName+".1"), []byte(page+"\n"), 0o644)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

//go:build mage

package main

import (
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetOutput          = "gen"
	jetSchemaFile      = "jet.sqlite"
	migrationsDir      = "migrations"
	serverBin          = "./bin/server"
	certgenBin         = "./bin/certgen"
	serverConfigPath   = "configs/server.toml"
	botConfigPath      = "configs/bot.toml"
	sqliteCommandShell = "sqlite3"
)

const (
	toolsDir     = "tools/"
	toolsModfile = toolsDir + "go.mod"
	toolsBinDir  = toolsDir + "bin/"
	lintTool     = toolsBinDir + "golangci-lint"
	jetTool      = toolsBinDir + "jet"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds server binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.Run("go", "build", "-o", serverBin, "cmd/main.go")
}

// Run starts server
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin, "-server-config", serverConfigPath, "-bot-config", botConfigPath)
}

// Cert writes a self-signed cert.pem and key.pem for the [tls] config section
func Cert() error {
	mg.Deps(goModDownload)
	if err := sh.Run("go", "build", "-o", certgenBin, "./cmd/certgen"); err != nil {
		return err
	}
	return sh.Run(certgenBin)
}

// Test runs the unit tests
func Test() error {
	mg.Deps(goModDownload)
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "test", "./...")
}

// GenJet regenerates the jet models of the games table from the migrations
func GenJet() error {
	mg.Deps(buildJetTool)
	defer os.Remove(jetSchemaFile)
	if err := applyMigrations(jetSchemaFile); err != nil {
		return err
	}
	return sh.Run(jetTool, "-source", "sqlite", "-dsn", jetSchemaFile, "-path", jetOutput)
}

func applyMigrations(file string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		if err := sh.Run(sqliteCommandShell, file, ".read "+migrationsDir+"/"+name); err != nil {
			return err
		}
	}
	return nil
}

func buildJetTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-o", jetTool, "github.com/go-jet/jet/v2/cmd/jet")
}

func Lint() error {
	mg.Deps(buildLintTool)
	return sh.Run(lintTool, "run", "./...")
}

func buildLintTool() error {
	return sh.Run(
		"go", "build",
		"-modfile", toolsModfile,
		"-o", lintTool,
		"github.com/golangci/golangci-lint/cmd/golangci-lint",
	)
}

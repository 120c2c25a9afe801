package main

import (
	"errors"
	"os"

	dw2md "github.com/mdupras/go-dw2md"
	"github.com/mdupras/go-dw2md/internal/config"
	"github.com/mdupras/go-dw2md/internal/fileutil"
)

// Exit codes follow sysexits-style conventions.
const (
	ExitSuccess = 0 // All documents converted
	ExitGeneral = 1 // At least one document failed
	ExitUsage   = 2 // Bad flags or configuration
	ExitIO      = 3 // Filesystem problem before conversion started
)

// exitCodeFor maps an error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoSourceDir),
		errors.Is(err, ErrNoOutputDir),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrConfigTooLarge),
		errors.Is(err, dw2md.ErrInvalidImageWidth):
		return ExitUsage
	case errors.Is(err, ErrSourceDirMissing),
		errors.Is(err, ErrPagesDirMissing),
		errors.Is(err, fileutil.ErrMediaSourceMissing),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO
	}
	return ExitGeneral
}

package main

import (
	"flag"

	"github.com/heartmarshall/wordbook-admin/internal/service/wordimport"
)

type cliFlags struct {
	fs           *flag.FlagSet
	file         *string
	dryRun       *bool
	source       *string
	importConfig *string
}

func newCLIFlags(fs *flag.FlagSet) *cliFlags {
	return &cliFlags{
		fs:           fs,
		file:         fs.String("file", "", "path to the JSON file with entries"),
		dryRun:       fs.Bool("dry-run", false, "validate and report without writing to DB"),
		source:       fs.String("source", "", "source name recorded on the import batch"),
		importConfig: fs.String("import-config", "", "path to word-import YAML config file"),
	}
}

// apply copies the flags set on the command line into cfg. Unset flags keep
// the config value, so --dry-run=false can turn off dry_run: true.
func (f *cliFlags) apply(cfg *wordimport.CLIConfig) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "file":
			cfg.File = *f.file
		case "dry-run":
			cfg.DryRun = *f.dryRun
		case "source":
			cfg.Source = *f.source
		}
	})
}

package main

import (
	"github.com/pressly/goose/v3"

	appfs "github.com/heliumhq/dashboard-api/fs"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	command := "up"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	return gooseRunFunc(command, cli.db.DB, "migrations", args...)
}

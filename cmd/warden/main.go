package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/docshelf/warden/cmd"
)

type wardenCommand struct {
	Serve   cmd.ServeCommand   `command:"serve" description:"Start the access decision API"`
	Migrate cmd.MigrateCommand `command:"migrate" description:"Manage the database schema"`
}

func main() {
	parser := flags.NewParser(&wardenCommand{}, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}
}

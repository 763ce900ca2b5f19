// Package main is the entry point for the cinedual application.
package main

import (
	"github.com/samber/lo"
	"github.com/simgunz/cinedual/cmd"
	"github.com/simgunz/cinedual/config"
	"github.com/simgunz/cinedual/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

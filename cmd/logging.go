package cmd

import (
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("tracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// applyLogLevel honours log_level from a config file unless a verbosity flag was given.
func applyLogLevel(ctx *cli.Context, name string) {
	if name == "" || ctx.GlobalBool("v") || ctx.GlobalBool("vv") {
		return
	}
	if level, err := log.ParseLevel(name); err == nil {
		log.SetLevel(level)
	}
}

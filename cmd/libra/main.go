package main

import (
	"github.com/zan8in/gologger"
	"github.com/zan8in/libra/pkg/libra"
)

func main() {

	options := libra.ParseOptions()

	runner, err := libra.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	if err := runner.Run(); err != nil {
		gologger.Fatal().Msgf("Could not run aggregation: %s\n", err)
	}
}

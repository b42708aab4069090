package libra

import (
	"github.com/zan8in/gologger"
)

var Version = "0.1.0"

func ShowBanner() {
	gologger.Print().Msgf("\n|||\tL I B R A\t|||\t%s\n\n", Version)
}

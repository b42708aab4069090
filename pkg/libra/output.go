package libra

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/zan8in/gologger"
	"github.com/zan8in/libra/pkg/util/fileutil"
)

// WriteOutput prints the aggregated prefixes to stdout, IPv4 first then
// IPv6, and mirrors them to the output file when one was given.
func (runner *Runner) WriteOutput() error {
	for p := range runner.prefixes.Prefixes() {
		gologger.Silent().Msgf("%s\n", p)
	}

	if runner.options.Output == "" {
		return nil
	}

	switch fileutil.FileExt(runner.options.Output) {
	case fileutil.FILE_JSON:
		return runner.writeJSON()
	case fileutil.FILE_CSV:
		return runner.writeCSV()
	default:
		return runner.writeTxt()
	}
}

func (runner *Runner) writeTxt() error {
	f, err := os.Create(runner.options.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for p := range runner.prefixes.Prefixes() {
		fmt.Fprintln(w, p)
	}
	return w.Flush()
}

type jsonOutput struct {
	IPv4 []string `json:"ipv4"`
	IPv6 []string `json:"ipv6"`
}

func (runner *Runner) writeJSON() error {
	out := jsonOutput{IPv4: []string{}, IPv6: []string{}}
	for _, p := range runner.prefixes.V4() {
		out.IPv4 = append(out.IPv4, p.String())
	}
	for _, p := range runner.prefixes.V6() {
		out.IPv6 = append(out.IPv6, p.String())
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(runner.options.Output, data, 0644)
}

func (runner *Runner) writeCSV() error {
	f, err := os.Create(runner.options.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"cidr", "family"}); err != nil {
		return err
	}
	for _, p := range runner.prefixes.V4() {
		if err := w.Write([]string{p.String(), "ipv4"}); err != nil {
			return err
		}
	}
	for _, p := range runner.prefixes.V6() {
		if err := w.Write([]string{p.String(), "ipv6"}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

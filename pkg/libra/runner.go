package libra

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/zan8in/gologger"
	"github.com/zan8in/libra/pkg/aggregate"
	"github.com/zan8in/libra/pkg/prefix"
	"github.com/zan8in/libra/pkg/result"
)

var errHostBits = errors.New("host bits set")

type Runner struct {
	options  *Options
	prefixes *aggregate.DualStack
	report   *result.Result
	exclude  *excluder

	parseCache *lru.Cache[string, parsedToken]
	acceptChan chan prefix.IPOrNet

	tempInputFile string
}

// parsedToken memoizes one parse attempt. Route-collector dumps repeat
// tokens heavily, so a bounded cache pays for itself.
type parsedToken struct {
	ipn prefix.IPOrNet
	err error
}

func NewRunner(options *Options) (*Runner, error) {
	runner := &Runner{
		options:  options,
		prefixes: aggregate.NewDualStack(),
		report:   result.NewResult(),
	}

	cache, err := lru.New[string, parsedToken](DefaultParseCacheSize)
	if err != nil {
		return runner, err
	}
	runner.parseCache = cache

	excludeTokens, err := runner.excludeTokens()
	if err != nil {
		return runner, err
	}
	runner.exclude, err = newExcluder(excludeTokens)
	if err != nil {
		return runner, err
	}

	runner.acceptChan = make(chan prefix.IPOrNet)

	return runner, nil
}

func (runner *Runner) Run() error {
	defer runner.Close()

	starttime := time.Now()

	if err := runner.ParsePrefixes(); err != nil {
		return err
	}

	runner.prefixes.Finalize()

	if err := runner.WriteOutput(); err != nil {
		return err
	}

	gologger.Info().Msgf("%d prefixes accepted (%d rejected), %d prefixes out. Libra finished in %s\n",
		runner.report.Accepted4()+runner.report.Accepted6(),
		len(runner.report.Rejections()),
		runner.prefixes.Len(),
		time.Since(starttime).Round(time.Millisecond),
	)

	return nil
}

// ParsePrefixes merges every input source into a temp file, then feeds
// each whitespace-separated token through parse and acceptance checks.
// Accepted prefixes flow over a channel to the single goroutine owning
// the working sets.
func (runner *Runner) ParsePrefixes() error {
	tempInput, err := os.CreateTemp("", tempfile)
	if err != nil {
		return err
	}
	defer tempInput.Close()

	if len(runner.options.Target) > 0 {
		for _, t := range runner.options.Target {
			fmt.Fprintf(tempInput, "%s\n", t)
		}
	}

	for _, path := range runner.options.TargetFile {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tempInput, f)
		f.Close()
		if err != nil {
			return err
		}
		// input files are not required to end with a newline
		fmt.Fprintln(tempInput)
	}

	if len(runner.options.Target) == 0 && len(runner.options.TargetFile) == 0 {
		if _, err := io.Copy(tempInput, os.Stdin); err != nil {
			return err
		}
	}

	runner.tempInputFile = tempInput.Name()

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for ipn := range runner.acceptChan {
			runner.prefixes.Add(ipn)
			runner.report.AddAccepted(ipn.Is6())
		}
	}()

	wg := sizedwaitgroup.New(DefaultWorkerThreads)
	f, err := os.Open(runner.tempInputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		for _, token := range strings.Fields(s.Text()) {
			wg.Add()
			go func(token string) {
				defer wg.Done()
				runner.addToken(token)
			}(token)
		}
	}

	wg.Wait()
	close(runner.acceptChan)
	<-collectorDone

	return s.Err()
}

func (runner *Runner) addToken(token string) {
	parsed, ok := runner.parseCache.Get(token)
	if !ok {
		ipn, err := prefix.Parse(token)
		parsed = parsedToken{ipn: ipn, err: err}
		runner.parseCache.Add(token, parsed)
	}

	if parsed.err != nil {
		runner.report.AddRejection(token, parsed.err)
		gologger.Warning().Msgf("'%s' is not a valid IP network, ignoring (%s)\n", token, parsed.err)
		return
	}

	runner.addPrefix(token, parsed.ipn)
}

// addPrefix applies the acceptance policy. Host-bit validation runs
// before the family filters, matching aggregate6 behavior of always
// validating network validity regardless of -4/-6.
func (runner *Runner) addPrefix(token string, ipn prefix.IPOrNet) {
	if !runner.options.Truncate && ipn.HasHostBits() {
		runner.report.AddRejection(token, errHostBits)
		gologger.Warning().Msgf("'%s' is not a valid IP network, ignoring.\n", ipn)
		return
	}

	// Don't bother saving if we won't display.
	if runner.options.OnlyV4 && ipn.Is6() {
		return
	} else if runner.options.OnlyV6 && ipn.Is4() {
		return
	}

	if runner.exclude.covers(ipn) {
		gologger.Debug().Msgf("'%s' covered by exclude list, dropping\n", token)
		return
	}

	if runner.options.maxPrefixlen.Allows(ipn) {
		runner.acceptChan <- ipn
	}
}

func (runner *Runner) excludeTokens() ([]string, error) {
	tokens := []string(runner.options.Exclude)

	if runner.options.ExcludeFile == "" {
		return tokens, nil
	}

	f, err := os.Open(runner.options.ExcludeFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		tokens = append(tokens, strings.Fields(s.Text())...)
	}

	return tokens, s.Err()
}

// Report exposes the per-token diagnostics collected during the run.
func (runner *Runner) Report() *result.Result {
	return runner.report
}

// Close runner instance
func (runner *Runner) Close() {
	os.RemoveAll(runner.tempInputFile)
}

package libra

import (
	"os"

	"github.com/pkg/errors"
	"github.com/zan8in/goflags"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"
	"github.com/zan8in/libra/pkg/prefix"
	"github.com/zan8in/libra/pkg/util/fileutil"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Target      goflags.StringSlice // Target is the single prefix or comma-separated list of prefixes to aggregate
	TargetFile  goflags.StringSlice // TargetFile is the list of files containing prefixes, stdin is used when empty
	Exclude     goflags.StringSlice // Prefixes to be excluded from the aggregation
	ExcludeFile string              // File containing prefixes to exclude from the aggregation

	MaxPrefixlen string // Maximum prefix length accepted, "N" or "[IPv4],[IPv6]"
	Truncate     bool   // Truncate IP/mask to network/mask instead of rejecting host bits
	OnlyV4       bool   // Only output IPv4 prefixes
	OnlyV6       bool   // Only output IPv6 prefixes
	Output       string // Output is the file to write aggregated prefixes to
	Config       string // Config is an optional yaml file pre-seeding the options
	Debug        bool   // Prints out debug information
	Silent       bool   // Only print aggregated prefixes

	maxPrefixlen prefix.PrefixlenPair
}

func ParseOptions() *Options {

	ShowBanner()

	options := &Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Libra compacts IPv4/IPv6 prefix lists into the smallest equivalent set of CIDR blocks`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&options.Target, "t", "target", nil, "prefixes to aggregate (comma-separated)", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.TargetFile, "T", "target-file", nil, "list of files with prefixes to aggregate, stdin when omitted (comma-separated)", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.Exclude, "eh", "exclude-prefix", nil, "prefixes to exclude from aggregation (comma-separated)", goflags.NormalizedStringSliceOptions),
		flagSet.StringVarP(&options.ExcludeFile, "ef", "exclude-file", "", "list of prefixes to exclude from aggregation (file)"),
	)

	flagSet.CreateGroup("config", "Configuration",
		flagSet.StringVarP(&options.MaxPrefixlen, "m", "max-prefixlen", "", "maximum prefix length accepted, single value or [IPv4],[IPv6] (default 32,128)"),
		flagSet.BoolVar(&options.Truncate, "truncate", false, "truncate IP/mask to network/mask (else reject prefixes with host bits set)"),
		flagSet.BoolVar(&options.OnlyV4, "4", false, "only output IPv4 prefixes"),
		flagSet.BoolVar(&options.OnlyV6, "6", false, "only output IPv6 prefixes"),
		flagSet.StringVar(&options.Config, "config", "", "yaml config file pre-seeding the options"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write output to (optional), support format: txt,csv,json"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Debug, "debug", false, "display debugging information"),
		flagSet.BoolVar(&options.Silent, "silent", false, "only display aggregated prefixes"),
	)

	_ = flagSet.Parse()

	err := options.validateOptions()
	if err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

var (
	errTwoFamilyMode  = errors.New("both IPv4-only and IPv6-only mode specified")
	errOutputFielType = errors.New("output file type error, support txt, json, csv")
)

func (options *Options) validateOptions() (err error) {

	if options.Config != "" {
		if err := options.loadConfig(options.Config); err != nil {
			return err
		}
	}

	if options.OnlyV4 && options.OnlyV6 {
		return errTwoFamilyMode
	}

	options.maxPrefixlen = prefix.DefaultPrefixlenPair()
	if options.MaxPrefixlen != "" {
		pair, err := prefix.ParsePrefixlenPair(options.MaxPrefixlen)
		if err != nil {
			return errors.Wrap(err, "max-prefixlen")
		}
		options.maxPrefixlen = pair
	}

	if len(options.Output) > 0 {
		if err := checkOutput(options.Output); err != nil {
			return err
		}
	}

	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}

	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}

	return err
}

type configFile struct {
	Targets      []string `yaml:"targets"`
	TargetFiles  []string `yaml:"target-files"`
	Exclude      []string `yaml:"exclude"`
	ExcludeFile  string   `yaml:"exclude-file"`
	MaxPrefixlen string   `yaml:"max-prefixlen"`
	Truncate     bool     `yaml:"truncate"`
	OnlyV4       bool     `yaml:"only-v4"`
	OnlyV6       bool     `yaml:"only-v6"`
	Output       string   `yaml:"output"`
}

// loadConfig fills options from a yaml file. Values given on the command
// line win over the config file.
func (options *Options) loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, "config")
	}

	if len(options.Target) == 0 {
		options.Target = cfg.Targets
	}
	if len(options.TargetFile) == 0 {
		options.TargetFile = cfg.TargetFiles
	}
	if len(options.Exclude) == 0 {
		options.Exclude = cfg.Exclude
	}
	if options.ExcludeFile == "" {
		options.ExcludeFile = cfg.ExcludeFile
	}
	if options.MaxPrefixlen == "" {
		options.MaxPrefixlen = cfg.MaxPrefixlen
	}
	if options.Output == "" {
		options.Output = cfg.Output
	}
	options.Truncate = options.Truncate || cfg.Truncate
	options.OnlyV4 = options.OnlyV4 || cfg.OnlyV4
	options.OnlyV6 = options.OnlyV6 || cfg.OnlyV6

	return nil
}

func checkOutput(output string) error {
	fileType := fileutil.FileExt(output)
	switch fileType {
	case fileutil.FILE_TXT:
		return nil
	case fileutil.FILE_JSON:
		return nil
	case fileutil.FILE_CSV:
		return nil
	default:
		return errOutputFielType
	}
}

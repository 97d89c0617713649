package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/keypears/keypears/util"
	"github.com/keypears/keypears/util/profiling"
	"github.com/keypears/keypears/version"
	"github.com/pkg/errors"
)

const (
	blake3SubCmd      = "blake3"
	workParSubCmd     = "workpar"
	iterateSubCmd     = "iterate"
	insertNonceSubCmd = "insertnonce"
	evaluateSubCmd    = "evaluate"
)

const (
	defaultLogFilename    = "pow5.log"
	defaultErrLogFilename = "pow5_err.log"
)

var (
	// Default configuration options
	defaultHomeDir = util.AppDataDir("pow5", false)
	defaultLogDir  = filepath.Join(defaultHomeDir, "logs")
)

type configFlags struct {
	ShowVersion bool         `short:"V" long:"version" description:"Display version information and exit"`
	LogLevel    string       `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems" default:"info"`
	StderrLevel logger.Level `long:"stderrlevel" description:"Minimum level of log entries written to stderr" default:"warn"`
	LogDir      string       `long:"logdir" description:"Directory to write rotating log files to"`
	NoLogFiles  bool         `long:"nologfiles" description:"Don't write log files"`
	JSON        bool         `long:"json" description:"Print results as JSON objects"`
	Profile     string       `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
}

// HeaderFlags select the header variant and the header itself
type HeaderFlags struct {
	Variant  string `long:"variant" short:"a" description:"Header variant {217a, 64b}" default:"217a"`
	Header   string `long:"header" short:"H" description:"The header, encoded according to --encoding. Read from stdin when omitted"`
	Encoding string `long:"encoding" short:"e" description:"Encoding of headers, both read and printed {hex, base64}" default:"hex"`
}

type blake3Config struct {
	Data string `long:"data" description:"The data to hash, base64 encoded. Read from stdin when omitted"`
}

type workParConfig struct {
	HeaderFlags
}

type iterateConfig struct {
	HeaderFlags
	Nonce     string `long:"nonce" short:"n" description:"A 32 bit nonce to insert before hashing (decimal, or hex with a 0x prefix)"`
	WideNonce string `long:"wide-nonce" short:"w" description:"A 32 byte nonce, hex encoded, to insert before hashing (64b headers only)"`
}

type insertNonceConfig struct {
	HeaderFlags
	Nonce     string `long:"nonce" short:"n" description:"A 32 bit nonce (decimal, or hex with a 0x prefix)"`
	WideNonce string `long:"wide-nonce" short:"w" description:"A 32 byte nonce, hex encoded (64b headers only)"`
}

type evaluateConfig struct {
	HeaderFlags
	Start   uint32 `long:"start" short:"s" description:"The first nonce to evaluate"`
	Count   uint64 `long:"count" short:"c" description:"The number of consecutive nonces to evaluate" default:"1"`
	Workers int    `long:"workers" short:"t" description:"The number of hashing goroutines. Defaults to the number of CPUs"`
}

func newParser(cfg *configFlags) (*flags.Parser, map[string]interface{}) {
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	// Checked by parseConfig, so that --version works without a sub-command
	parser.SubcommandsOptional = true

	commandConfigs := map[string]interface{}{
		blake3SubCmd:      &blake3Config{},
		workParSubCmd:     &workParConfig{},
		iterateSubCmd:     &iterateConfig{},
		insertNonceSubCmd: &insertNonceConfig{},
		evaluateSubCmd:    &evaluateConfig{},
	}

	parser.AddCommand(blake3SubCmd, "Hashes data with BLAKE3",
		"Hashes up to 10KiB of base64 encoded data with BLAKE3 and prints the hex encoded digest",
		commandConfigs[blake3SubCmd])
	parser.AddCommand(workParSubCmd, "Computes the matmul work digest of a header",
		"Computes the work-par digest of a 217a header or the matmul work digest of a 64b header",
		commandConfigs[workParSubCmd])
	parser.AddCommand(iterateSubCmd, "Computes the proof-of-work digest of a header",
		"Optionally inserts a nonce into the header, then computes its final proof-of-work digest",
		commandConfigs[iterateSubCmd])
	parser.AddCommand(insertNonceSubCmd, "Inserts a nonce into a header",
		"Prints a copy of the header with the given nonce inserted, in the header's encoding",
		commandConfigs[insertNonceSubCmd])
	parser.AddCommand(evaluateSubCmd, "Computes the digests of a range of nonces",
		"Computes the proof-of-work digest of the header with every nonce in [start, start+count) "+
			"inserted, in parallel, and prints them in nonce order",
		commandConfigs[evaluateSubCmd])

	return parser, commandConfigs
}

// parseConfig parses args and returns the global configuration, the name of the active
// sub-command and its configuration.
func parseConfig(args []string) (cfg *configFlags, subCommand string, commandConfig interface{}, err error) {
	cfg = &configFlags{}
	parser, commandConfigs := newParser(cfg)

	_, err = parser.ParseArgs(args)

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, "", nil, err
	}

	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}

	if cfg.Profile != "" {
		err := profiling.ValidatePort(cfg.Profile)
		if err != nil {
			return nil, "", nil, err
		}
	}

	if parser.Command.Active == nil {
		return nil, "", nil, errors.New("no sub-command was specified")
	}
	subCommand = parser.Command.Active.Name
	return cfg, subCommand, commandConfigs[subCommand], nil
}

func (cfg *configFlags) logFiles() (logFile, errLogFile string) {
	if cfg.NoLogFiles {
		return "", ""
	}
	return filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/keypears/keypears/util/panics"
	"github.com/keypears/keypears/util/profiling"
	"github.com/pkg/errors"
)

func main() {
	cfg, subCommand, commandConfig, err := parseConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		// go-flags already printed its own errors
		if !errors.As(err, &flagsErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		printErrorAndExit(err)
	}
	logFile, errLogFile := cfg.logFiles()
	err = logger.InitLog(os.Stderr, cfg.StderrLevel, logFile, errLogFile)
	if err != nil {
		printErrorAndExit(err)
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, "main", nil)

	// Enable http profiling server if requested.
	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	p := &printer{out: os.Stdout, useJSON: cfg.JSON}
	err = runCommand(p, subCommand, commandConfig, stdinSource())
	if err != nil {
		printErrorAndExit(err)
	}
}

func printErrorAndExit(err error) {
	logger.BackendLog.Close()
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

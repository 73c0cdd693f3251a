package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

type commandParams struct {
	envName        string
	baseURL        string
	configFile     string
	filters        apitest.RegexFilters
	skipFile       string
	recordFailures string
	jUnitFile      string
	debug          bool
	debugAll       bool
	maxAttempts    int
	retryDelay     time.Duration
	backoff        bool
	useBreaker     bool
	useMockServer  bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.envName, "env", "", "name of the environment to test (default comes from the configuration)")
	fs.StringVar(&c.baseURL, "url", "", "override the environment's base URL")
	fs.StringVar(&c.configFile, "config", "", "read environments from the specified YAML file instead of the built-in one")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file containing names of tests to skip")
	fs.StringVar(&c.recordFailures, "record-failures", "", "file to write names of failed tests to")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.IntVar(&c.maxAttempts, "attempts", restclient.DefaultMaxAttempts, "maximum attempts per request")
	fs.DurationVar(&c.retryDelay, "retry-delay", restclient.DefaultRetryDelay, "delay between retry attempts")
	fs.BoolVar(&c.backoff, "backoff", false, "scale the retry delay by the attempt number")
	fs.BoolVar(&c.useBreaker, "breaker", false, "route requests through a circuit breaker")
	fs.BoolVar(&c.useMockServer, "mock", false, "run against an in-process mock server instead of a real deployment")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.maxAttempts < 1 {
		fmt.Fprintln(os.Stderr, "-attempts must be at least 1")
		fs.Usage()
		return false
	}
	return true
}

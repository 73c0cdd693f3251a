package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/qxf2/cars-api-test-harness/apitests"
	"github.com/qxf2/cars-api-test-harness/config"
	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/mockcars"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*apitest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	environment, environmentName, err := selectEnvironment(params, mainDebugLogger)
	if err != nil {
		return nil, err
	}

	retry := restclient.RetryPolicy{
		MaxAttempts:       params.maxAttempts,
		Delay:             params.retryDelay,
		Backoff:           params.backoff,
		TransientStatuses: restclient.DefaultTransientStatuses(),
	}

	var newTransport func(framework.Logger) restclient.Transport
	if params.useBreaker {
		newTransport = func(logger framework.Logger) restclient.Transport {
			return restclient.NewBreakerTransport(
				restclient.NewHTTPTransport(logger), environmentName, logger)
		}
	}

	var testLogger apitest.TestLogger
	consoleLogger := apitest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		testLogger = &apitest.MultiTestLogger{Loggers: []apitest.TestLogger{
			consoleLogger,
			apitest.NewJUnitTestLogger(params.jUnitFile, environmentName, environment.BaseURL, params.filters),
		}}
	}

	tracker := apitest.NewTracker(mainDebugLogger)

	results := apitests.RunCarsAPITestSuite(apitests.SuiteParams{
		Environment:     environment,
		EnvironmentName: environmentName,
		RetryPolicy:     retry,
		Filters:         params.filters,
		TestLogger:      testLogger,
		Tracker:         tracker,
		NewTransport:    newTransport,
	})

	fmt.Println()
	logErr := testLogger.EndLog(results)
	apitest.PrintTally(tracker.Finalize())

	if logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	if params.recordFailures != "" {
		f, err := os.Create(params.recordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %v", err)
		}
		for _, test := range results.Failures {
			fmt.Fprintln(f, test.TestID)
		}
		_ = f.Close()
	}

	return &results, nil
}

// selectEnvironment resolves the deployment to test from the configuration file and
// command line options. With -mock it instead starts an in-process mock server and
// returns an environment pointing at it.
func selectEnvironment(params commandParams, debugLogger framework.Logger) (config.Environment, string, error) {
	if params.useMockServer {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return config.Environment{}, "", fmt.Errorf("cannot start mock server: %v", err)
		}
		mockLogger := framework.LoggerWithPrefix(debugLogger, "[mock server] ")
		go func() {
			_ = http.Serve(listener, mockcars.NewService(mockLogger))
		}()
		env := config.Environment{
			BaseURL:  "http://" + listener.Addr().String(),
			Admin:    config.Credentials{Username: "qxf2", Password: "qxf2"},
			NonAdmin: config.Credentials{Username: "eric", Password: "testqxf2"},
		}
		return env, "mock", nil
	}

	var cfg config.Config
	var err error
	if params.configFile == "" {
		cfg, err = config.LoadDefault()
	} else {
		cfg, err = config.LoadFile(params.configFile)
	}
	if err != nil {
		return config.Environment{}, "", err
	}

	name := params.envName
	if name == "" {
		name = cfg.DefaultEnvironment
	}
	env, err := cfg.Environment(name)
	if err != nil {
		return config.Environment{}, "", err
	}
	if params.baseURL != "" {
		env.BaseURL = strings.TrimRight(params.baseURL, "/")
	}
	return env, name, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}

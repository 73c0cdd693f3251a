// Package apitest is a simple test framework for the API test suite, not dependent on
// Go's testing package. It provides test scopes similar to testing.T, regex-based test
// filtering, pluggable test output (console and JUnit), and run-wide result tracking.
package apitest

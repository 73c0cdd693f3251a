// Package framework contains general-purpose plumbing for the test harness,
// such as logging, that is not specific to the Cars API domain.
package framework

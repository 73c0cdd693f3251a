// Package endpoints contains the per-resource callers for the Cars API: cars, users,
// and registrations. Each caller builds a request descriptor and submits it through
// the shared client, which applies the retry policy and logs every exchange. Callers
// return raw outcomes; classification of status codes is left to
// restclient.Classify, and body-shape checks to the typed decode helpers.
package endpoints

// Package config provides configuration loading, merging, and validation
// facilities for the allocation ledger.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file in the working directory (optional)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetStructuredConfig] for the server runtime and
// [GetClientConfig] for the ledger CLI.
package config

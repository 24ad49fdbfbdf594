// Package config provides configuration loading, merging, and validation
// facilities for the feed client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for every non-zero field):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetClientConfig], which returns the validated
// [ClientConfig] consumed by the rest of the application.
package config

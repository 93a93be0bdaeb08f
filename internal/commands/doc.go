// Package commands provides the command-line interface for treecrypt.
//
// It implements commands for:
//   - key generation
//   - encryption
//   - decryption
//
// Command-line parsing, environment variable binding and configuration
// validation are handled through cobra and viper.
package commands

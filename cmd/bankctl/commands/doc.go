// Package commands implements the bankctl terminal front end. Each
// subcommand acts on the session recorded under --home.
package commands

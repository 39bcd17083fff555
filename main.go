// Package main is the entry point for the hockeyleaders CLI tool, which
// scrapes team season stats, builds career totals and charts all-time leaders.
package main

import "github.com/pable/go-hockey-leaders/cmd"

func main() {
	cmd.Execute()
}

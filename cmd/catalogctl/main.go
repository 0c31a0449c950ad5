// Package main provides the entry point for catalogctl.
package main

import "github.com/echoverse/echo-web/internal/cli"

func main() {
	cli.Execute()
}

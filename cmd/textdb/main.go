/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ptero-tools/textdb/cmd/textdb/cmd"
)

func main() {
	cmd.Execute()
}

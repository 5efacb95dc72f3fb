package main

import "github.com/robertKrusekopf/kegelsim-client/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/addegbenga/mip-dapp/cmd"

func main() {
	cmd.Execute()
}

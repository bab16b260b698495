package main

import "github.com/shaharia-lab/regnotify/cmd"

func main() {
	cmd.Execute()
}

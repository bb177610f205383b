package main

import "github.com/shaharia-lab/devicedesk-notifier/cmd"

func main() {
	cmd.Execute()
}

package main

import "faceconsole/cmd"

func main() {
	cmd.Execute()
}

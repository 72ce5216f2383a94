package main

import "drill-eda/cmd"

func main() {
	cmd.Execute()
}

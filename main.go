/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package main

import (
	"github.com/joho/godotenv"

	"github.com/MOYARU/prsreport/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}

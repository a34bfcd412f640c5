package main

import (
	"github.com/msabale-r7/openoffice-vc-plugin/cmd/vcplugin/commands"
	"github.com/msabale-r7/openoffice-vc-plugin/shared"
)

func main() {
	shared.LoadConfig() // nolint: errcheck

	commands.Execute()
}

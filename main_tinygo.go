//go:build tinygo

package main

import (
	"tftscenes/app"
	"tftscenes/hal"
)

// sceneName is set with -ldflags "-X main.sceneName=galaxy".
var sceneName string

func main() {
	cfg := app.DefaultConfig()
	cfg.Scene = sceneName
	cfg.Loop.CollectGarbage = true
	app.Run(hal.New(), cfg)
}

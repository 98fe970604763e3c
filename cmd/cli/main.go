package main

import (
	"context"
	"log"
	"os"

	"github.com/akimovd/wastepoint/internal/buildinfo"
	"github.com/akimovd/wastepoint/internal/client/cli"
	"github.com/akimovd/wastepoint/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

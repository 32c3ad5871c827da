package main

import (
	"context"
	"log"
	"os"

	"github.com/Nandighoshbus/busticket-cli/internal/buildinfo"
	"github.com/Nandighoshbus/busticket-cli/internal/client/cli"
	"github.com/Nandighoshbus/busticket-cli/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

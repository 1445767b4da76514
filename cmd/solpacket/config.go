package main

import (
	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:  "config",
	Usage: "manage the CLI state",
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "set the daemon url the CLI talks to",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "daemon_url",
					Usage: "base url of the solpacketd REST interface",
					Value: "http://localhost:9908",
				},
			},
			Action: configInitAction,
		},
		{
			Name:   "show",
			Usage:  "print the current CLI state",
			Action: configShowAction,
		},
	},
}

func configInitAction(ctx *cli.Context) error {
	return setState(map[string]string{
		"daemon_url": ctx.String("daemon_url"),
	})
}

func configShowAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}
	// never print the keypair secret
	redacted := map[string]string{}
	for key, value := range state {
		if key == "private_key" {
			value = "<redacted>"
		}
		redacted[key] = value
	}
	printRespJSON(redacted)
	return nil
}

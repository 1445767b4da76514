package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"
)

var genkey = cli.Command{
	Name:   "genkey",
	Usage:  "generate and store the keypair used to sign requests",
	Action: genkeyAction,
}

func genkeyAction(ctx *cli.Context) error {
	if _, err := getPrivateKey(); err == nil {
		return fmt.Errorf("a keypair already exists, remove %s to rotate it", statePath)
	}

	privateKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}

	if err := setState(map[string]string{
		"private_key": privateKey.String(),
	}); err != nil {
		return err
	}

	fmt.Println(privateKey.PublicKey().String())
	return nil
}

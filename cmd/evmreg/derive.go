package main

import (
	"fmt"

	"github.com/hostlayer/evmreg/common"
	"github.com/hostlayer/evmreg/registry"
	"github.com/urfave/cli/v2"
)

var Derive = cli.Command{
	Action:    derive,
	Name:      "derive",
	Usage:     "computes the native address an EVM address would be provisioned at",
	ArgsUsage: "<proxy-class-reference> <deployer-identity> <evm-address>",
}

func derive(context *cli.Context) error {
	if context.Args().Len() != 3 {
		return fmt.Errorf("expected <proxy-class-reference> <deployer-identity> <evm-address>")
	}

	ref, err := common.HexToClassReference(context.Args().Get(0))
	if err != nil {
		return err
	}
	deployer, err := common.HexToNativeAddress(context.Args().Get(1))
	if err != nil {
		return err
	}
	evm, err := common.HexToEvmAddress(context.Args().Get(2))
	if err != nil {
		return err
	}

	native := registry.AccountAddress(ref, deployer, evm)
	fmt.Printf("%v -> %v\n", evm, native)
	return nil
}

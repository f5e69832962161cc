package main

import (
	"errors"
	"fmt"

	"github.com/hostlayer/evmreg/common"
	"github.com/hostlayer/evmreg/registry"
	"github.com/urfave/cli/v2"
)

var Info = cli.Command{
	Action:    info,
	Name:      "info",
	Usage:     "prints the configuration and chain context of a registry",
	ArgsUsage: "<directory>",
	Flags:     []cli.Flag{&backendFlag},
}

func info(context *cli.Context) error {
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	kinds := []common.ClassKind{
		common.ClassKindPrecompiles,
		common.ClassKindContractAccount,
		common.ClassKindExternallyOwnedAccount,
		common.ClassKindAccountProxy,
	}
	for _, kind := range kinds {
		ref, err := reg.GetClassReference(kind)
		if errors.Is(err, registry.ErrNotConfigured) {
			fmt.Printf("%-20v not configured\n", kind)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Printf("%-20v %v\n", kind, ref)
	}

	token, err := reg.GetNativeToken()
	if errors.Is(err, registry.ErrNotConfigured) {
		fmt.Printf("%-20s not configured\n", "native-token")
	} else if err != nil {
		return err
	} else {
		fmt.Printf("%-20s %v\n", "native-token", token)
	}

	coinbase, err := reg.GetCoinbase()
	if errors.Is(err, registry.ErrNotConfigured) {
		fmt.Printf("%-20s not set\n", "chain-context")
		return nil
	}
	if err != nil {
		return err
	}
	baseFee, err := reg.GetBaseFee()
	if err != nil {
		return err
	}
	gasLimit, err := reg.GetBlockGasLimit()
	if err != nil {
		return err
	}
	fmt.Printf("%-20s %v\n", "coinbase", coinbase)
	fmt.Printf("%-20s %v\n", "base-fee", baseFee)
	fmt.Printf("%-20s %d\n", "block-gas-limit", gasLimit)
	return nil
}

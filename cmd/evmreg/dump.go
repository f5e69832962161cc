package main

import (
	"fmt"

	"github.com/hostlayer/evmreg/common"
	"github.com/hostlayer/evmreg/registry"
	"github.com/urfave/cli/v2"
)

var backendFlag = cli.StringFlag{
	Name:  "backend",
	Usage: "storage backend of the registry, leveldb or sqlite",
	Value: "leveldb",
}

var Dump = cli.Command{
	Action:    dump,
	Name:      "dump",
	Usage:     "prints all address mappings of a registry",
	ArgsUsage: "<directory>",
	Flags:     []cli.Flag{&backendFlag},
}

func dump(context *cli.Context) error {
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	count := 0
	err = reg.ForEachMapping(func(evm common.EvmAddress, native common.NativeAddress) error {
		fmt.Printf("%v -> %v\n", evm, native)
		count++
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d mappings\n", count)
	return nil
}

func openRegistry(context *cli.Context) (registry.Registry, error) {
	if context.Args().Len() != 1 {
		return nil, fmt.Errorf("missing registry directory")
	}
	var backend registry.Backend
	switch name := context.String(backendFlag.Name); name {
	case "leveldb":
		backend = registry.LevelDb
	case "sqlite":
		backend = registry.Sqlite
	default:
		return nil, fmt.Errorf("unsupported backend: %s", name)
	}
	// No deployer is configured; the tool only reads.
	return registry.NewRegistry(registry.Parameters{
		Directory: context.Args().Get(0),
		Backend:   backend,
	})
}

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit .pave.toml",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		val, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("key %q is not set", args[0])
		}
		cmd.Printf("%v\n", val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Long: `Sets a dotted key in .pave.toml, creating the file next to the
current directory when none exists yet. Values parse as booleans or
integers where possible, strings otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		if err := store.Set(args[0], parseConfigValue(args[1])); err != nil {
			return err
		}
		cmd.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every configured value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		values := store.List()
		for _, key := range store.Keys() {
			cmd.Printf("%s = %v\n", key, values[key])
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// openConfigStore opens the nearest .pave.toml, falling back to a new file
// in the working directory when none exists.
func openConfigStore() (*file.Store, error) {
	path, ok := file.Locate(flagDirectory)
	if !ok {
		abs, err := filepath.Abs(flagDirectory)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(abs, file.ConfigFileName)
	}
	return file.OpenStore(path)
}

// parseConfigValue maps a CLI string onto the TOML value types the engine
// reads back.
func parseConfigValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// iactl is the headless companion of the desktop app: scan a connected
// iPhone, transfer media, and inspect the transfer history from a terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "iactl",
	Short: "Copy photos and videos off an iPhone over USB",
	Long: `iactl talks to a USB-connected iPhone over the Apple File Conduit
and copies camera media to a local folder. Run "iactl scan" to see what
is on the device and "iactl transfer" to copy it.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default iautotransfer.yaml)")
	rootCmd.PersistentFlags().String("udid", "", "target a specific device by UDID")

	viper.BindPFlag("udid", rootCmd.PersistentFlags().Lookup("udid"))
}

// initConfig loads iautotransfer.yaml and IAUTOTRANSFER_* env overrides
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("iautotransfer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if configDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(configDir, "iautotransfer"))
		}
	}

	viper.SetEnvPrefix("IAUTOTRANSFER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config:", viper.ConfigFileUsed())
	}
}


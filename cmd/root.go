package cmd

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootFlags struct {
	verbose bool
	dbPath  string
}

var rootCmd = &cobra.Command{
	Use:   "relgate",
	Short: "Release management and approval backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if viper.GetBool("verbose") {
			log.Logger = log.Logger.Level(zerolog.DebugLevel)
		} else {
			log.Logger = log.Logger.Level(zerolog.InfoLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dbPath, "db", "relgate.db", "Path to the sqlite database")
	cobra.CheckErr(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
	cobra.CheckErr(viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db")))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(seedCmd)
}

// initConfig lets every flag be set through RELGATE_* environment
// variables as well, e.g. RELGATE_JOBHOST_TOKEN.
func initConfig() {
	viper.SetEnvPrefix("RELGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

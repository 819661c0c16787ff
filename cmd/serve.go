package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relgate/relgate/internal/server"
)

var serveFlags struct {
	port         int
	vcsMode      string
	vcsBaseURL   string
	vcsToken     string
	jobHostURL   string
	jobHostToken string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &server.Config{
			Port:         viper.GetInt("port"),
			DBPath:       viper.GetString("db"),
			VCSMode:      viper.GetString("vcs-mode"),
			VCSBaseURL:   viper.GetString("vcs-url"),
			VCSToken:     viper.GetString("vcs-token"),
			JobHostURL:   viper.GetString("jobhost-url"),
			JobHostToken: viper.GetString("jobhost-token"),
			Logger:       log.Logger,
		}
		srv := server.New(cfg)
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)

		wg := &sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cfg.Logger.Fatal().Err(err).Msg("server error")
			}
		}()

		sig := <-chSignal
		cfg.Logger.Info().Str("signal", sig.String()).Msg("shutting down server...")
		if err := srv.Stop(context.Background()); err != nil {
			cfg.Logger.Error().Err(err).Msg("error during server shutdown")
		}

		wg.Wait()
		cfg.Logger.Info().Msg("server stopped")
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveFlags.vcsMode, "vcs-mode", "git", "Branch validator: git or api")
	serveCmd.Flags().StringVar(&serveFlags.vcsBaseURL, "vcs-url", "", "Base URL of the hosted VCS API (vcs-mode=api)")
	serveCmd.Flags().StringVar(&serveFlags.vcsToken, "vcs-token", "", "Credential for the VCS host")
	serveCmd.Flags().StringVar(&serveFlags.jobHostURL, "jobhost-url", "", "Base URL of the deployment job host")
	serveCmd.Flags().StringVar(&serveFlags.jobHostToken, "jobhost-token", "", "Bearer credential for the job host")
	cobra.CheckErr(viper.BindPFlags(serveCmd.Flags()))
}

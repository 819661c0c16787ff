package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/entity"
)

var seedFlags struct {
	file string
}

// seedCmd loads Constant reference data from a JSON file of
// [{"repo": ..., "service": ..., "name": ...}] entries.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load service constants into the database",
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(seedFlags.file)
		if err != nil {
			log.Fatal().Err(err).Str("file", seedFlags.file).Msg("reading seed file failed")
		}
		var constants []struct {
			Repo    string `json:"repo"`
			Service string `json:"service"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal(raw, &constants); err != nil {
			log.Fatal().Err(err).Msg("parsing seed file failed")
		}

		store := mustOpenStore()
		ctx := context.Background()
		for _, c := range constants {
			err := store.Constants.Upsert(ctx, &entity.Constant{
				Repo:    c.Repo,
				Service: c.Service,
				Name:    c.Name,
			})
			if err != nil {
				log.Fatal().Err(err).Str("service", c.Service).Msg("seeding constant failed")
			}
		}
		log.Info().Int("count", len(constants)).Msg("constants seeded")
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFlags.file, "file", "f", "constants.json", "Seed file path")
}

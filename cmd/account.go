package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/identity"
	"github.com/relgate/relgate/internal/repository"
)

var accountCmd = &cobra.Command{Use: "account", Short: "Manage accounts, roles and tokens"}

var accountFlags struct {
	email     string
	firstName string
	lastName  string
	teamName  string
	roles     []string
	role      string
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account and print a fresh bearer token",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore()
		ctx := context.Background()

		acc, err := store.Accounts.Create(ctx, &entity.Account{
			Email:     accountFlags.email,
			FirstName: accountFlags.firstName,
			LastName:  accountFlags.lastName,
			TeamName:  accountFlags.teamName,
			Roles: lo.Map(accountFlags.roles, func(r string, _ int) entity.RoleGroup {
				return entity.RoleGroup(r)
			}),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("creating account failed")
		}

		token := identity.NewToken()
		if err := store.Accounts.CreateToken(ctx, acc.ID, token); err != nil {
			log.Fatal().Err(err).Msg("minting token failed")
		}
		fmt.Println(token)
	},
}

var accountGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant a role or approval group to an account",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore()
		ctx := context.Background()

		acc, err := store.Accounts.GetByEmail(ctx, accountFlags.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", accountFlags.email).Msg("account not found")
		}
		if err := store.Accounts.GrantRole(ctx, acc.ID, entity.RoleGroup(accountFlags.role)); err != nil {
			log.Fatal().Err(err).Msg("granting role failed")
		}
		log.Info().Str("email", acc.Email).Str("role", accountFlags.role).Msg("role granted")
	},
}

var accountTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a new bearer token for an account",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore()
		ctx := context.Background()

		acc, err := store.Accounts.GetByEmail(ctx, accountFlags.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", accountFlags.email).Msg("account not found")
		}
		token := identity.NewToken()
		if err := store.Accounts.CreateToken(ctx, acc.ID, token); err != nil {
			log.Fatal().Err(err).Msg("minting token failed")
		}
		fmt.Println(token)
	},
}

func mustOpenStore() *repository.Store {
	db, err := repository.NewSQLiteDB(viper.GetString("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("opening database failed")
	}
	return repository.NewStore(db)
}

func init() {
	for _, c := range []*cobra.Command{accountCreateCmd, accountGrantCmd, accountTokenCmd} {
		c.Flags().StringVar(&accountFlags.email, "email", "", "Account email")
		cobra.CheckErr(c.MarkFlagRequired("email"))
	}
	accountCreateCmd.Flags().StringVar(&accountFlags.firstName, "first-name", "", "First name")
	accountCreateCmd.Flags().StringVar(&accountFlags.lastName, "last-name", "", "Last name")
	accountCreateCmd.Flags().StringVar(&accountFlags.teamName, "team", "", "Team name")
	accountCreateCmd.Flags().StringSliceVar(&accountFlags.roles, "roles", nil, "Initial roles (e.g. release-admin,devops)")
	accountGrantCmd.Flags().StringVar(&accountFlags.role, "role", "", "Role or approval group to grant")
	cobra.CheckErr(accountGrantCmd.MarkFlagRequired("role"))

	accountCmd.AddCommand(accountCreateCmd, accountGrantCmd, accountTokenCmd)
}

package app

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashPasswordCmd)
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the argon2id hash for Admin.PasswordHash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := argon2id.CreateHash(args[0], argon2id.DefaultParams)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)

		return nil
	},
}

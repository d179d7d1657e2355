package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/proposal-backend/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		secret  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить API токен для /api",
		Long:  "Выпускает подписанный HS256 токен. Секрет берётся из --secret или API_TOKEN_SECRET (.env тоже читается).",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env")
			if secret == "" {
				secret = os.Getenv("API_TOKEN_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("token: API_TOKEN_SECRET не задан")
			}

			tokens, err := service.NewTokenManager(secret)
			if err != nil {
				return err
			}
			signed, exp, err := tokens.Issue(subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			fmt.Fprintf(cmd.ErrOrStderr(), "subject=%s expires=%s\n", subject, exp.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "proposal-editor", "кому выпускается токен")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "срок действия токена")
	cmd.Flags().StringVar(&secret, "secret", "", "секрет подписи (по умолчанию API_TOKEN_SECRET)")
	return cmd
}

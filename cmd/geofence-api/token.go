package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/auth"
	"github.com/heartmarshall/geofence-console/internal/config"
	"github.com/heartmarshall/geofence-console/internal/domain"
)

func newTokenCommand() *cobra.Command {
	var (
		userRaw string
		roleRaw string
		orgRaw  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a console operator",
		Example: `  geofence-api token --role boundary_author --org 5b0e...
  geofence-api token --role boundary_viewer --user 9f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}

			token, err := mintToken(cfg.Auth, userRaw, roleRaw, orgRaw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRaw, "user", "", "user ID (random when empty)")
	cmd.Flags().StringVar(&roleRaw, "role", string(domain.RoleBoundaryViewer), "boundary_author or boundary_viewer")
	cmd.Flags().StringVar(&orgRaw, "org", "", "home organization ID (none when empty)")
	return cmd
}

func mintToken(cfg config.AuthConfig, userRaw, roleRaw, orgRaw string) (string, error) {
	if len(cfg.JWTSecret) < 32 {
		return "", errors.New("auth.jwt_secret must be at least 32 characters")
	}

	role, err := domain.ParseRole(roleRaw)
	if err != nil {
		return "", err
	}

	userID := uuid.New()
	if userRaw != "" {
		if userID, err = uuid.Parse(userRaw); err != nil {
			return "", fmt.Errorf("--user: %w", err)
		}
	}

	var orgID *uuid.UUID
	if orgRaw != "" {
		id, err := uuid.Parse(orgRaw)
		if err != nil {
			return "", fmt.Errorf("--org: %w", err)
		}
		orgID = &id
	}

	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL).
		GenerateAccessToken(userID, role, orgID)
}

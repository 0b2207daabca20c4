package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"content-planner/domain/repository"
	"content-planner/infrastructure/clients/publications"
	"content-planner/infrastructure/configuration"
	"content-planner/infrastructure/credential"
	"content-planner/infrastructure/utils"

	"github.com/spf13/cobra"
)

// BackendOptions selects the backend and the identity calls are made with.
type BackendOptions struct {
	BaseURL  string
	Token    string
	UserID   string
	UserName string
}

func AddBackendArgs(cmd *cobra.Command, o *BackendOptions) {
	cmd.Flags().StringVar(&o.BaseURL, "backend", "",
		"Publication backend URL, defaults to BACKEND_URL or the config file.")
	cmd.Flags().StringVar(&o.Token, "token", os.Getenv("CALCTL_TOKEN"),
		"Bearer token for the backend. When empty one is signed with SECRET_KEY.")
	cmd.Flags().StringVar(&o.UserID, "user-id", "cli",
		"User id used when a token has to be signed locally.")
	cmd.Flags().StringVar(&o.UserName, "user-name", "",
		"User name used when a token has to be signed locally.")
}

func (o *BackendOptions) Client() repository.IPublication {
	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = configuration.C.Backend.BaseURL
	}
	return publications.NewClient(publications.Config{
		BaseURL:        baseURL,
		PublishNowPath: configuration.C.Backend.PublishNowPath,
		Timeout:        configuration.C.Backend.Timeout(),
	}, nil)
}

// Context attaches the bearer token, signing a short-lived one if none was given.
func (o *BackendOptions) Context(ctx context.Context) (context.Context, error) {
	token := o.Token
	if token == "" {
		secret := configuration.C.App.SecretKey
		if secret == "" {
			return nil, errors.New("no --token given and SECRET_KEY is not set")
		}
		var err error
		token, err = utils.GenerateUserToken(o.UserID, o.UserName, secret, 15*time.Minute)
		if err != nil {
			return nil, err
		}
	}
	ctx = credential.WithBearer(ctx, token)
	return credential.WithUserID(ctx, o.UserID), nil
}

package wargamer

import (
	"context"

	"github.com/jmgilman/go/errors"
)

// Authentication manages the lifetime of a client's access token.
//
// Token requests go to the console API for console clients and to the
// World of Tanks API otherwise.
type Authentication struct {
	client *Client
}

func (a *Authentication) product() Product {
	if a.client.product == ProductWorldOfTanksConsole {
		return ProductWorldOfTanksConsole
	}
	return ProductWorldOfTanks
}

// RenewAccessToken extends the client's access token. On success the client
// switches to the token returned by the API.
func (a *Authentication) RenewAccessToken(ctx context.Context, opts ...RequestOption) (*Response, error) {
	if a.client.AccessToken() == "" {
		return nil, sentinel(ErrMissingAccessToken, "failed to renew access token: access token is not set", nil)
	}

	opts = append([]RequestOption{ForProduct(a.product())}, opts...)
	resp, err := a.client.Post(ctx, "auth/prolongate", nil, opts...)
	if err != nil {
		return nil, err
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}
	if data.AccessToken == "" {
		return nil, errors.New(errors.CodeInternal, "renewal response did not contain an access token")
	}

	a.client.SetAccessToken(data.AccessToken)
	a.client.logger.InfoContext(ctx, "access token renewed")
	return resp, nil
}

// DestroyAccessToken invalidates the client's access token. On success the
// client no longer sends one.
func (a *Authentication) DestroyAccessToken(ctx context.Context, opts ...RequestOption) (*Response, error) {
	if a.client.AccessToken() == "" {
		return nil, sentinel(ErrMissingAccessToken, "failed to invalidate access token: access token is not set", nil)
	}

	opts = append([]RequestOption{ForProduct(a.product())}, opts...)
	resp, err := a.client.Post(ctx, "auth/logout", nil, opts...)
	if err != nil {
		return nil, err
	}

	a.client.SetAccessToken("")
	a.client.logger.InfoContext(ctx, "access token destroyed")
	return resp, nil
}

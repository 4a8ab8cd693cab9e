package wargamer

import (
	"context"
)

const accountList = "account/list"

// Player is an entry of account/list.
type Player struct {
	AccountID int64  `json:"account_id"`
	Nickname  string `json:"nickname"`
}

// Accounts wraps the account endpoints shared by every product.
type Accounts struct {
	client *Client
}

// FindPlayerID returns the account ID of the player whose nickname is
// exactly name. It reports false when no such player exists.
func (a *Accounts) FindPlayerID(ctx context.Context, name string, opts ...RequestOption) (int64, bool, error) {
	players, err := a.list(ctx, name, "exact", opts)
	if err != nil {
		return 0, false, err
	}
	if len(players) == 0 {
		return 0, false, nil
	}
	return players[0].AccountID, true, nil
}

// SearchPlayers returns the players whose nickname starts with prefix.
func (a *Accounts) SearchPlayers(ctx context.Context, prefix string, opts ...RequestOption) ([]Player, error) {
	return a.list(ctx, prefix, "startswith", opts)
}

func (a *Accounts) list(ctx context.Context, search, searchType string, opts []RequestOption) ([]Player, error) {
	resp, err := a.client.Get(ctx, accountList, Params{"search": search, "type": searchType}, opts...)
	if err != nil {
		return nil, err
	}

	var players []Player
	if err := resp.Decode(&players); err != nil {
		return nil, err
	}
	return players, nil
}

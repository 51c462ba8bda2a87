package faceapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListUsers fetches the full roster. The backend has returned two shapes over
// time: a bare array, or an object wrapping a "users" array. Both are
// accepted; any other shape is an error.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	raw, err := doGetJSON[json.RawMessage](ctx, c, "users")
	if err != nil {
		return nil, err
	}

	// A bare null also unmarshals into a nil slice; only a real array counts.
	var users []User
	if err := json.Unmarshal(*raw, &users); err == nil && users != nil {
		return users, nil
	}

	var wrapped struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(*raw, &wrapped); err == nil && wrapped.Users != nil {
		return wrapped.Users, nil
	}

	return nil, fmt.Errorf("unexpected users response shape")
}

// GetUser fetches a single record for the detail view.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	resp, err := doGetJSON[userDetailResponse](ctx, c, "users/"+id)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("user detail response missing user record")
	}
	return resp.User, nil
}

// DeleteUser removes a record from the backend.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if _, err := doDeleteJSON[StatusResult](ctx, c, "users/"+id); err != nil {
		return err
	}
	return nil
}

package test_utils

import (
	"context"

	"github.com/farmledger/farmledger/pkg/user"
)

type TestUserProvider struct{}

func (p TestUserProvider) GetCurrentUser(ctx context.Context) (user.User, error) {
	return user.User{
		Id:          123,
		Username:    "test_user",
		DisplayName: "Test User",
		Settings: user.Settings{
			Timezone: "Asia/Jakarta",
			Currency: "USD",
		},
	}, nil
}

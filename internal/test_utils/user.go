package test_utils

import (
	"context"

	"github.com/finboard/finboard/pkg/user"
)

const TestUserUid = "test-user"

// UserContext returns a context carrying the test user and a bearer token.
func UserContext() context.Context {
	return user.WithUser(context.Background(), user.User{
		Uid:   TestUserUid,
		Token: "Bearer test-token",
	})
}

package services_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"shopfront/internal/storefront/apiclient"
)

type mockAPIClient struct {
	mock.Mock
}

func (m *mockAPIClient) Do(
	ctx context.Context,
	method, path string,
	body, out any,
	opts ...apiclient.RequestOption,
) error {
	args := m.Called(ctx, method, path, body, out, len(opts))
	return args.Error(0)
}

// respond декодирует raw в аргумент out вызова Do.
func respond(raw string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if out := args.Get(4); out != nil {
			if err := json.Unmarshal([]byte(raw), out); err != nil {
				panic(err)
			}
		}
	}
}

package session

import (
	"github.com/gofiber/fiber/v2"
)

// FromFiber reads the request-scoped Token from fiber locals for handlers
// that work against *fiber.Ctx directly instead of the router abstraction.
func FromFiber(c *fiber.Ctx, key string) (*Token, error) {
	if key == "" {
		key = DefaultContextKey
	}

	local := c.Locals(key)
	if local == nil {
		return nil, ErrUnableToFindSession
	}

	token, ok := local.(*Token)
	if token == nil || !ok {
		return nil, ErrUnableToDecodeSession
	}
	return token, nil
}

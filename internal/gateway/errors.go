package gateway

import (
	"errors"
	"fmt"

	domainerrors "github.com/echoverse/echo-web/internal/errors"
)

// Sentinel errors for gateway operations.
var (
	// ErrUnreachable covers transport failures and undecodable responses.
	ErrUnreachable = errors.New("gateway: unreachable")
	// ErrRejected is returned when the gateway answers with success=false.
	ErrRejected = errors.New("gateway: rejected")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "categories", "items", "createItem", ...
	Path    string
	Message string // Gateway message, or the operation's fallback text
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s [%s]: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// toDomain converts a gateway error into the coded domain error surfaced to callers.
// The *Error stays reachable through the cause chain.
func toDomain(e *Error) error {
	if errors.Is(e.Err, ErrRejected) {
		return domainerrors.GatewayRejected(e.Message, e)
	}
	return domainerrors.GatewayUnreachable(e.Message, e)
}

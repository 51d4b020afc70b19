package ws

// MsgReady is the first message on every connection.
const MsgReady = "ready"

// TokenParser resolves an access token to a user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// El core nunca parsea credenciales; solo consume el user id ya resuelto.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

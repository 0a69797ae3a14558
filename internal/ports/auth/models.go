package auth

// Claims representa la identidad extraída del token de la plataforma
// de chat. PlayerID es el id de actor externo; el juego nunca genera
// ids de jugador propios.
type Claims struct {
	PlayerID string
	Username string
}

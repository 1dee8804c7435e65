// Package transport holds the wire contract shared with the map frontend and
// the itinerary relay. Field names are the French ones those clients send.
package transport

const (
	StatutSucces = "Succès"
	StatutErreur = "Erreur"
)

type CredentialsRequest struct {
	Identifiant string `json:"identifiant"`
	MotDePasse  string `json:"motdepasse"`
}

type TokenRequest struct {
	Jeton string `json:"jeton"`
}

type UpdateRequest struct {
	ID          uint   `json:"id"`
	Identifiant string `json:"identifiant"`
	MotDePasse  string `json:"motdepasse"`
	Jeton       string `json:"jeton"`
}

type UserInfo struct {
	UserID      uint   `json:"userId"`
	Identifiant string `json:"identifiant"`
}

type Response struct {
	Statut      string    `json:"statut"`
	Message     string    `json:"message"`
	Token       string    `json:"token,omitempty"`
	Utilisateur *UserInfo `json:"utilisateur,omitempty"`
}

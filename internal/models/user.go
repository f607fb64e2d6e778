package models

// User is a single record in the users collection. The username is the
// primary key; the password is stored exactly as received (login does a
// plaintext comparison against the persisted document).
type User struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Profile  Profile `json:"profile"`
	Videos   []Video `json:"videos"`
}

// Profile keeps the follow graph embedded in the user record. Seguidores
// and Seguindo hold usernames; reciprocity is maintained by the repository,
// which mutates both sides inside one persisted write.
type Profile struct {
	Bio        string   `json:"bio"`
	Avatar     string   `json:"avatar"`
	Seguidores []string `json:"seguidores"`
	Seguindo   []string `json:"seguindo"`
}

// Stats are computed on profile reads, never persisted.
type Stats struct {
	Seguindo   int `json:"seguindo"`
	Seguidores int `json:"seguidores"`
	Curtidas   int `json:"curtidas"`
}

// UserWithStats is the GET /api/user/:username response shape.
type UserWithStats struct {
	User
	Stats Stats `json:"stats"`
}

// UserSummary is what user search returns: usernames only.
type UserSummary struct {
	Username string `json:"username"`
}

func NewUser(username, password string) *User {
	return &User{
		Username: username,
		Password: password,
		Profile: Profile{
			Seguidores: []string{},
			Seguindo:   []string{},
		},
		Videos: []Video{},
	}
}

// Following reports whether the user already follows target.
func (u *User) Following(target string) bool {
	for _, name := range u.Profile.Seguindo {
		if name == target {
			return true
		}
	}
	return false
}

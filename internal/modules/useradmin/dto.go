package useradmin

type UpdateAccountRequest struct {
	Roles *[]string `json:"roles"`
	Team  *string   `json:"team"`
}

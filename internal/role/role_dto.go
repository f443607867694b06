package role

type RoleResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func mapToResponse(r Role) RoleResponse {
	return RoleResponse{ID: r.ID.String(), Role: r.Role}
}

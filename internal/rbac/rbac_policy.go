package rbac

import "go-ems/internal/role"

// Permission grants action on resource to a role.
type Permission struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// inheritance lists (member, parent): the member gets every permission of the parent.
var inheritance = [][2]string{
	{role.ProjectManager, role.Employee},
	{role.HR, role.ProjectManager},
	{role.Admin, role.HR},
}

var defaultPolicy = []Permission{
	{role.Employee, "employee", "read"},
	{role.Employee, "salary", "read"},
	{role.Employee, "leave_balance", "read"},
	{role.Employee, "role", "read"},

	{role.HR, "employee", "create"},
	{role.HR, "employee", "update"},
	{role.HR, "leave_balance", "update"},
	{role.HR, "salary", "export"},

	{role.Admin, "employee", "delete"},
}

package payrollreport

func mapToResponse(v SalaryView) SalaryResponse {
	return SalaryResponse{
		ID:               v.ID.String(),
		EmployeeID:       v.EmployeeID.String(),
		EmployeeCode:     v.EmployeeCode,
		Email:            v.Email,
		EmployeeFullName: v.EmployeeFullName,
		Month:            v.Month,
		Year:             v.Year,
		BaseSalary:       v.BaseSalary,
		UnpaidLeaves:     v.UnpaidLeaves,
		LeaveDeduction:   v.LeaveDeduction,
		NetSalary:        v.NetSalary,
		IsActive:         v.IsActive,
		GeneratedAt:      v.GeneratedAt,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func mapToResponses(views []SalaryView) []SalaryResponse {
	out := make([]SalaryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, mapToResponse(v))
	}
	return out
}

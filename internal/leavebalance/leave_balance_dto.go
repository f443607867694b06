package leavebalance

type RecordUsageRequest struct {
	EventID         string `json:"eventId"`
	EmployeeID      string `json:"-"`
	Month           string `json:"month" binding:"required"`
	Year            int    `json:"year" binding:"required"`
	PaidLeaveUsed   int    `json:"paidLeaveUsed"`
	UnpaidLeaveUsed int    `json:"unpaidLeaveUsed"`
}

// MonthUsage is the ledger view consumed by payroll.
type MonthUsage struct {
	Month           string `json:"month"`
	Year            int    `json:"year"`
	PaidLeaveUsed   int    `json:"paidLeaveUsed"`
	UnpaidLeaveUsed int    `json:"unpaidLeaveUsed"`
}

type LeaveBalanceResponse struct {
	ID              string       `json:"id"`
	EmployeeID      string       `json:"employeeId"`
	Leave           int          `json:"leave"`
	ExtraLeave      int          `json:"extraLeave"`
	PaidLeaveUsed   int          `json:"paidLeaveUsed"`
	UnpaidLeaveUsed int          `json:"unpaidLeaveUsed"`
	Remaining       int          `json:"remaining"`
	History         []MonthUsage `json:"history"`
}

func mapToResponse(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		ID:         b.ID.String(),
		EmployeeID: b.EmployeeID.String(),
		Leave:      b.Leave,
		ExtraLeave: b.ExtraLeave,
		History:    make([]MonthUsage, 0, len(b.History)),
	}
	for _, h := range b.History {
		resp.PaidLeaveUsed += h.PaidLeaveUsed
		resp.UnpaidLeaveUsed += h.UnpaidLeaveUsed
		resp.History = append(resp.History, mapToMonthUsage(h))
	}
	resp.Remaining = resp.Leave + resp.ExtraLeave - resp.PaidLeaveUsed
	return resp
}

func mapToMonthUsage(e LeaveHistoryEntry) MonthUsage {
	return MonthUsage{
		Month:           e.Month,
		Year:            e.Year,
		PaidLeaveUsed:   e.PaidLeaveUsed,
		UnpaidLeaveUsed: e.UnpaidLeaveUsed,
	}
}

package events

import "time"

// LeaveUsageTopic is produced by the leave-management flow; this service only consumes it.
const LeaveUsageTopic = "hr.leave.usage.v1"

type LeaveUsageRecordedEvent struct {
	EventID         string    `json:"event_id"`
	EmployeeID      string    `json:"employee_id"`
	Month           string    `json:"month"`
	Year            int       `json:"year"`
	PaidLeaveUsed   int       `json:"paid_leave_used"`
	UnpaidLeaveUsed int       `json:"unpaid_leave_used"`
	OccurredAt      time.Time `json:"occurred_at"`
}

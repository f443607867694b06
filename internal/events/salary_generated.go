package events

import "time"

const SalaryGeneratedTopic = "hr.payroll.salary.v1"

const SalaryGeneratedType = "salary_generated"

type SalaryGeneratedEvent struct {
	EventType      string    `json:"event_type"`
	SalaryRecordID string    `json:"salary_record_id"`
	EmployeeID     string    `json:"employee_id"`
	Month          string    `json:"month"`
	Year           int       `json:"year"`
	NetSalary      string    `json:"net_salary"`
	OccurredAt     time.Time `json:"occurred_at"`
}

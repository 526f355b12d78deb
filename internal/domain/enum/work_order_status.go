package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// WorkOrderStatus represents the lifecycle status of a work order
type WorkOrderStatus int

const (
	WorkOrderStatusScheduled  WorkOrderStatus = 0
	WorkOrderStatusInProgress WorkOrderStatus = 1
	WorkOrderStatusCompleted  WorkOrderStatus = 2
	WorkOrderStatusInvoiced   WorkOrderStatus = 3
	WorkOrderStatusCancelled  WorkOrderStatus = 4
)

func (s WorkOrderStatus) String() string {
	return [...]string{"Scheduled", "In Progress", "Completed", "Invoiced", "Cancelled"}[s]
}

func (s WorkOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *WorkOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = WorkOrderStatus(i)
		return nil
	}
	switch str {
	case "Scheduled":
		*s = WorkOrderStatusScheduled
	case "In Progress":
		*s = WorkOrderStatusInProgress
	case "Completed":
		*s = WorkOrderStatusCompleted
	case "Invoiced":
		*s = WorkOrderStatusInvoiced
	case "Cancelled":
		*s = WorkOrderStatusCancelled
	}
	return nil
}

func (s WorkOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *WorkOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = WorkOrderStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = WorkOrderStatus(v)
	case int:
		*s = WorkOrderStatus(v)
	}
	return nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ServiceOrderStatus is the workflow state of a service order
type ServiceOrderStatus string

const (
	ServiceOrderStatusOpen         ServiceOrderStatus = "aberta"
	ServiceOrderStatusInProduction ServiceOrderStatus = "em_producao"
	ServiceOrderStatusReady        ServiceOrderStatus = "pronta"
	ServiceOrderStatusDelivered    ServiceOrderStatus = "entregue"
	ServiceOrderStatusCancelled    ServiceOrderStatus = "cancelada"
)

// ServiceOrderStatuses lists every status in workflow order.
var ServiceOrderStatuses = []ServiceOrderStatus{
	ServiceOrderStatusOpen,
	ServiceOrderStatusInProduction,
	ServiceOrderStatusReady,
	ServiceOrderStatusDelivered,
	ServiceOrderStatusCancelled,
}

func (s ServiceOrderStatus) String() string {
	return string(s)
}

func (s ServiceOrderStatus) IsValid() bool {
	for _, v := range ServiceOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ServiceOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ServiceOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ServiceOrderStatus(str)
	return nil
}

func (s ServiceOrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ServiceOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ServiceOrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ServiceOrderStatus(v)
	case []byte:
		*s = ServiceOrderStatus(string(v))
	}
	return nil
}

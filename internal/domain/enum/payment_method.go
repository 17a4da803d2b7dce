package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod is how the client pays (forma de pagamento)
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "dinheiro"
	PaymentMethodCreditCard  PaymentMethod = "cartao_credito"
	PaymentMethodDebitCard   PaymentMethod = "cartao_debito"
	PaymentMethodPix         PaymentMethod = "pix"
	PaymentMethodBoleto      PaymentMethod = "boleto"
	PaymentMethodInstallment PaymentMethod = "parcelado"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPix,
	PaymentMethodBoleto,
	PaymentMethodInstallment,
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
